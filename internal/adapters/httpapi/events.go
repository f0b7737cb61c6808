package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bnema/agentctl/internal/store"
)

type storeEvent struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
	TS     int64  `json:"ts"`
}

// events streams one server-sent event per store replacement. Bursts are
// coalesced per kind when the client falls behind.
func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "stream_not_supported", "streaming is not supported")
		return
	}

	pending := make(chan store.Kind, len(store.Kinds)*4)
	for _, kind := range store.Kinds {
		unsubscribe := h.lifecycle.Subscribe(kind, func(kind store.Kind) {
			select {
			case pending <- kind:
			default:
			}
		})
		defer unsubscribe()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log := h.logger.With().Str("request_id", chimw.GetReqID(r.Context())).Logger()
	log.Info().Msg("sse stream opened")

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Info().Err(r.Context().Err()).Msg("sse stream closed")
			return
		case kind := <-pending:
			event := storeEvent{
				Kind:   string(kind),
				Status: string(h.lifecycle.Overview().Status),
				TS:     h.clock.Now().UnixMilli(),
			}
			if err := writeSSE(w, string(kind), event); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if err := writeSSE(w, "ping", map[string]int64{"ts": h.clock.Now().UnixMilli()}); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode sse payload: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
