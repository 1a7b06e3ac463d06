package http

import (
	"net/http"

	"medlyst-gateway/internal/delivery/http/handler"
	"medlyst-gateway/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	directoryHandler   *handler.DirectoryHandler
	sessionHandler     *handler.BookingSessionHandler
	historyHandler     *handler.BookingHistoryHandler
	adminHandler       *handler.AdminHandler
	adminKeyMiddleware *middleware.AdminKeyMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	directoryHandler *handler.DirectoryHandler,
	sessionHandler *handler.BookingSessionHandler,
	historyHandler *handler.BookingHistoryHandler,
	adminHandler *handler.AdminHandler,
	adminKeyMiddleware *middleware.AdminKeyMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		directoryHandler:   directoryHandler,
		sessionHandler:     sessionHandler,
		historyHandler:     historyHandler,
		adminHandler:       adminHandler,
		adminKeyMiddleware: adminKeyMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctor directory (public)
	api.HandleFunc("/doctors", r.directoryHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/refresh", r.directoryHandler.RefreshDirectory).Methods(http.MethodPost)
	api.HandleFunc("/doctors/{id}", r.directoryHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/specialties", r.directoryHandler.ListSpecialties).Methods(http.MethodGet)

	// Booking wizard sessions (public)
	sessions := api.PathPrefix("/booking-sessions").Subrouter()
	sessions.HandleFunc("", r.sessionHandler.Open).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", r.sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", r.sessionHandler.Close).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/date", r.sessionHandler.SetDate).Methods(http.MethodPut)
	sessions.HandleFunc("/{id}/time", r.sessionHandler.SetTime).Methods(http.MethodPut)
	sessions.HandleFunc("/{id}/advance", r.sessionHandler.Advance).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/submit", r.sessionHandler.Submit).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/reset", r.sessionHandler.Reset).Methods(http.MethodPost)

	// Local booking history (public)
	api.HandleFunc("/bookings", r.historyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", r.historyHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", r.historyHandler.Cancel).Methods(http.MethodDelete)

	// Admin routes (static-key gated)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.adminKeyMiddleware.Require)
	admin.HandleFunc("/doctors", r.adminHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.adminHandler.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/slots", r.adminHandler.CreateSlot).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
