package api

import (
	"attractions-walker/internal/api/handlers"
	"attractions-walker/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(sessions handlers.Sessions, fallbackSensor func(r *http.Request) ports.LocationSensor) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &handlers.SessionHandler{
		Sessions:       sessions,
		FallbackSensor: fallbackSensor,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("POST /sessions", sessionHandler.Start)
	mux.HandleFunc("GET /sessions/{id}", sessionHandler.Get)
	mux.HandleFunc("GET /sessions/{id}/current", sessionHandler.Current)
	mux.HandleFunc("POST /sessions/{id}/next", sessionHandler.Next)
	mux.HandleFunc("GET /sessions/{id}/history", sessionHandler.History)

	return requestIDMiddleware(loggingMiddleware(mux))
}
