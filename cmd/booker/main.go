package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"reservequeue/internal/catalog"
	"reservequeue/internal/client"
	"reservequeue/internal/config"
	"reservequeue/internal/console"
	"reservequeue/internal/logging"
	"reservequeue/internal/reservation"
	"reservequeue/internal/session"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		assumeYes = flag.Bool("yes", false, "cancel without asking for confirmation")
		noColor   = flag.Bool("no-color", false, "disable coloured statuses")
		profile   = flag.String("profile", "", "session profile (overrides session.profile)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log, os.Stderr)
	if *profile != "" {
		cfg.Session.Profile = *profile
	}
	if err := cfg.ValidateClient(); err != nil {
		logrus.Fatalf("Invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := client.New(cfg.API.BaseURL, client.WithTimeout(cfg.API.Timeout))
	if err != nil {
		logrus.Fatalf("Failed to create API client: %v", err)
	}
	logrus.WithField("base_url", api.BaseURL()).Debug("API client ready")

	store, closeStore, err := sessionStore(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to open session store: %v", err)
	}
	defer closeStore()

	sess := session.New(api, store)
	if err := sess.Restore(ctx); err != nil {
		logrus.WithError(err).Warn("could not restore session, starting logged out")
	}

	var src catalog.Source = catalog.StaticSource{Delay: cfg.Booking.FetchDelay}
	if cfg.API.Remote {
		src = catalog.RemoteSource{API: api}
	}
	shops := catalog.Fetch(ctx, src)

	validator := reservation.NewValidator()
	validator.Capacity = cfg.Booking.MaxReservations
	reservations := reservation.NewStore(validator)
	if cfg.Booking.SeedSamples {
		reservations.Seed(reservation.SampleReservations(catalog.Builtin(), uuid.NewString)...)
	}

	c := console.New(console.Options{
		In:        os.Stdin,
		Out:       os.Stdout,
		Shops:     shops,
		Store:     reservations,
		Session:   sess,
		API:       api,
		AssumeYes: *assumeYes,
		Color:     !*noColor && isTerminal(os.Stdout),
	})
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		logrus.Fatalf("Console stopped: %v", err)
	}
}

func sessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	noop := func() {}
	switch cfg.Session.Driver {
	case "memory":
		return session.NewMemoryStore(), noop, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, noop, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logrus.WithField("addr", cfg.Redis.Addr).Debug("session store: redis")
		return session.NewRedisStore(rdb, cfg.Session.Profile, cfg.Session.TTL), func() { rdb.Close() }, nil
	default:
		path := cfg.Session.Path
		if path == "" {
			p, err := session.DefaultPath(cfg.Session.Profile)
			if err != nil {
				return nil, noop, err
			}
			path = p
		}
		logrus.WithField("path", path).Debug("session store: file")
		return session.NewFileStore(path), noop, nil
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
