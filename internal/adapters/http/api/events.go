// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/rollcall/internal/adapters/repository"
	"github.com/okian/rollcall/internal/domain/model"
)

// EventsHandler handles event creation, lookup and response recording.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleEvents handles POST /events requests.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	params := repository.CreateParams{
		PointValue:       *req.PointValue,
		PenalizesAbsence: req.PenalizesAbsence,
		Title:            req.Title,
		Detail:           req.Detail,
	}
	if req.OccursAt != "" {
		// Validated above; parse cannot fail here.
		params.OccursAt, _ = time.Parse(time.RFC3339, req.OccursAt)
	}

	event, err := h.deps.CreateEvent(r.Context(), params)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// HandleEvent handles GET /events/{id} and POST /events/{id}/responses.
func (h *EventsHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/events/")
	idStr, tail, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind("api.event", ErrBadRequest))
		return
	}

	switch {
	case tail == "" && r.Method == http.MethodGet:
		h.getEvent(w, r, id)
	case tail == "responses" && r.Method == http.MethodPost:
		h.recordResponse(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) getEvent(w http.ResponseWriter, r *http.Request, id int64) {
	const op = "api.get_event"
	event, err := h.deps.Event(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventsHandler) recordResponse(w http.ResponseWriter, r *http.Request, id int64) {
	const op = "api.record_response"
	var req responseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	event, err := h.deps.RecordResponse(r.Context(), id, req.UserID, model.Response(req.State))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}
