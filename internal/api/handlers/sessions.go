package handlers

import (
	"attractions-walker/internal/adapters/sensor"
	"attractions-walker/internal/api/dto"
	"attractions-walker/internal/api/render"
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"attractions-walker/internal/services"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
)

// Sessions is the part of the session manager the HTTP layer drives.
type Sessions interface {
	Start(ctx context.Context, req services.StartRequest) (domain.Frame, error)
	Next(ctx context.Context, id string) (domain.Frame, error)
	Current(ctx context.Context, id string) (domain.Frame, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	History(ctx context.Context, id string) ([]ports.WalkEntry, error)
}

type SessionHandler struct {
	Sessions Sessions
	// Optional server-side sensor consulted when the client could not
	// report a position itself.
	FallbackSensor func(r *http.Request) ports.LocationSensor
}

// Start opens a walk session from the client's reported position (or
// sensor failure) and answers with the first frame.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartSessionRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if (req.Lat == nil) != (req.Lng == nil) {
		writeError(w, r, http.StatusBadRequest, "lat and lng must be given together")
		return
	}

	client := sensor.ClientSensor{Failure: strings.TrimSpace(req.SensorError)}
	if req.Lat != nil {
		c := domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
		if !c.Valid() {
			writeError(w, r, http.StatusBadRequest, "lat must be in [-90, 90] and lng in [-180, 180]")
			return
		}
		client.Coordinates = &c
	}

	// A position or failure reported by the client is final; the server-side
	// sensor only stands in when the client said nothing.
	chain := sensor.Chain{client}
	if !client.Reported() && h.FallbackSensor != nil {
		if s := h.FallbackSensor(r); s != nil {
			chain = append(chain, s)
		}
	}

	frame, err := h.Sessions.Start(r.Context(), services.StartRequest{Sensor: chain})
	if err != nil {
		writeSessionError(w, r, "start session", err)
		return
	}

	writeFrame(w, r, http.StatusCreated, frame)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s, err := h.Sessions.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, r, "get session", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSessionResponse(s))
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	frame, err := h.Sessions.Current(r.Context(), r.PathValue("id"))
	if err != nil {
		writeSessionError(w, r, "current place", err)
		return
	}

	writeFrame(w, r, http.StatusOK, frame)
}

// Next is the user's "next" action.
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	frame, err := h.Sessions.Next(r.Context(), r.PathValue("id"))
	if err != nil {
		writeSessionError(w, r, "next place", err)
		return
	}

	writeFrame(w, r, http.StatusOK, frame)
}

func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	entries, err := h.Sessions.History(r.Context(), id)
	if err != nil {
		writeSessionError(w, r, "session history", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewHistoryResponse(id, entries))
}

func writeSessionError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, r, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrNextDisabled):
		writeError(w, r, http.StatusConflict, "next is disabled until the first places arrive")
	case errors.Is(err, domain.ErrExhausted):
		writeError(w, r, http.StatusGone, "no more places in this session")
	default:
		log.Printf("%s failed: %v", op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// writeFrame answers with the HTML fragment when the client asks for
// text/html, JSON otherwise.
func writeFrame(w http.ResponseWriter, r *http.Request, status int, f domain.Frame) {
	if !wantsHTML(r) {
		writeJSON(w, r, status, dto.NewFrameResponse(f))
		return
	}

	var buf bytes.Buffer
	if err := render.Frame(&buf, f); err != nil {
		log.Printf("render failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("write failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
