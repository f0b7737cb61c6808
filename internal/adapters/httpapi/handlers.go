package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bnema/agentctl/internal/domain"
)

const maxRequestBytes = 1 << 16

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *handlers) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, NewStatusResponse(h.lifecycle.Overview()))
}

func (h *handlers) eligibility(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	action := domain.Action(query.Get("action"))
	if action == "" {
		action = domain.ActionStart
	}
	if !action.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_action", "unknown action "+string(action))
		return
	}
	target := domain.ProgramID(query.Get("program"))

	verdict, err := h.lifecycle.Verdict(action, target)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, newVerdictResponse(action, target, verdict, h.clock.Now()))
}

func (h *handlers) start(w http.ResponseWriter, r *http.Request) {
	h.finish(w, domain.ActionStart, h.lifecycle.Start(r.Context()))
}

func (h *handlers) stop(w http.ResponseWriter, r *http.Request) {
	h.finish(w, domain.ActionStop, h.lifecycle.Stop(r.Context()))
}

func (h *handlers) migrate(w http.ResponseWriter, r *http.Request) {
	program := domain.ProgramID(chi.URLParam(r, "program"))
	if program == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "staking program is required")
		return
	}
	h.finish(w, domain.ActionMigrate, h.lifecycle.Migrate(r.Context(), program))
}

type withdrawRequest struct {
	To string `json:"to"`
}

func (h *handlers) withdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "decode request body: "+err.Error())
		return
	}
	to, err := domain.ParseAddress(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_address", err.Error())
		return
	}

	h.finish(w, domain.ActionWithdraw, h.lifecycle.Withdraw(r.Context(), to))
}

func (h *handlers) finish(w http.ResponseWriter, action domain.Action, err error) {
	if err != nil {
		h.logger.Warn().Err(err).Str("action", string(action)).Msg("lifecycle request failed")
		h.writeLifecycleError(w, err)
		return
	}

	overview := h.lifecycle.Overview()
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"action": action,
		"status": overview.Status,
	})
}

// writeLifecycleError maps the orchestrator error taxonomy onto HTTP codes.
func (h *handlers) writeLifecycleError(w http.ResponseWriter, err error) {
	var transition *domain.TransitionError
	var denied *domain.EligibilityError

	switch {
	case errors.As(err, &transition):
		writeError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrStaleData):
		writeError(w, http.StatusServiceUnavailable, string(domain.ReasonLoading), err.Error())
	case errors.As(err, &denied):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:       string(denied.Verdict.Reason),
			Message:     err.Error(),
			Explanation: denied.Verdict.Explain(h.clock.Now()),
			Verdict:     ptr(newVerdictBody(denied.Verdict, h.clock.Now())),
		})
	case errors.Is(err, domain.ErrInstanceNotFound):
		writeError(w, http.StatusNotFound, "instance_not_found", err.Error())
	case errors.Is(err, domain.ErrCollaboratorFailure):
		writeError(w, http.StatusBadGateway, "collaborator_failure", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

type errorResponse struct {
	Error       string       `json:"error"`
	Message     string       `json:"message,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
	Verdict     *verdictBody `json:"verdict,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func ptr[T any](v T) *T {
	return &v
}

func unixOrNil(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	seconds := t.Unix()
	return &seconds
}
