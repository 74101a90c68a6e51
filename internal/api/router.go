package api

import (
	"io"
	"net/http"

	"reservequeue/internal/auth"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth      *AuthHandler
	Hospitals *HospitalHandler
	Tickets   *TicketHandler
}

// NewRouter mounts the REST surface under /api/v1.
func NewRouter(h Handlers, tokens *auth.Tokens) *mux.Router {
	r := mux.NewRouter()
	v1 := r.PathPrefix("/api/v1").Subrouter()

	// Public endpoints
	v1.HandleFunc("/hospitals", h.Hospitals.ListHospitals).Methods("GET")
	v1.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	v1.HandleFunc("/auth/register/", h.Auth.Register).Methods("POST")
	v1.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")

	// Bearer-protected endpoints
	private := v1.NewRoute().Subrouter()
	private.Use(auth.Middleware(tokens, h.Auth.service.Exists))

	private.HandleFunc("/tickets", h.Tickets.ListTickets).Methods("GET")
	private.HandleFunc("/tickets/{id}", h.Tickets.GetTicket).Methods("GET")
	private.HandleFunc("/tickets/{id}", h.Tickets.UpdateTicket).Methods("PUT")
	private.HandleFunc("/tickets/{id}", h.Tickets.DeleteTicket).Methods("DELETE")
	private.HandleFunc("/hospitals/{hospitalId:[0-9]+}/tickets", h.Tickets.CreateTicket).Methods("POST")

	private.HandleFunc("/appointments", h.Tickets.ListTickets).Methods("GET")
	private.HandleFunc("/appointments/{id}", h.Tickets.DeleteTicket).Methods("DELETE")
	private.HandleFunc("/hospitals/{hospitalId:[0-9]+}/appointments", h.Tickets.CreateTicket).Methods("POST")

	return r
}

// Wrap adds CORS and an Apache-style access log written to accessLog.
func Wrap(r http.Handler, accessLog io.Writer, allowOrigins []string) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	return cors(handlers.CombinedLoggingHandler(accessLog, r))
}
