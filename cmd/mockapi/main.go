package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reservequeue/internal/api"
	"reservequeue/internal/auth"
	"reservequeue/internal/config"
	"reservequeue/internal/logging"
	"reservequeue/internal/repository"
	"reservequeue/internal/reservation"
	"reservequeue/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	cfg.Log.Format = "json"
	logging.Setup(cfg.Log, os.Stdout)

	if err := cfg.ValidateServer(); err != nil {
		logrus.Fatalf("Invalid config: %v", err)
	}

	tokens, err := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		logrus.Fatalf("Failed to set up tokens: %v", err)
	}

	validator := reservation.NewValidator()
	validator.Capacity = cfg.Booking.MaxReservations

	hospitalRepo := repository.NewHospitalRepository(nil)
	ticketRepo := repository.NewTicketRepository()
	userRepo := repository.NewUserRepository()

	ticketSvc := service.NewTicketService(ticketRepo, hospitalRepo, validator)
	jobSvc := service.NewJobService(ticketRepo)

	router := api.NewRouter(api.Handlers{
		Auth:      api.NewAuthHandler(service.NewAuthService(userRepo, tokens)),
		Hospitals: api.NewHospitalHandler(service.NewHospitalService(hospitalRepo)),
		Tickets:   api.NewTicketHandler(ticketSvc),
	}, tokens)

	accessLog := logrus.StandardLogger().WriterLevel(logrus.InfoLevel)
	defer accessLog.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.Wrap(router, accessLog, cfg.Server.AllowOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	scheduler := cron.New()
	if _, err := jobSvc.Schedule(scheduler, cfg.Jobs.ConfirmSchedule, cfg.Jobs.ConfirmAfter); err != nil {
		logrus.Fatalf("Failed to schedule confirmation job: %v", err)
	}
	scheduler.Start()
	logrus.WithField("schedule", cfg.Jobs.ConfirmSchedule).Info("Confirmation job started")

	go func() {
		logrus.Infof("Mock API running on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Info("Mock API shutting down")
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occurred on server shutting down: %s", err.Error())
	}
}
