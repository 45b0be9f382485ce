package httpapi

import (
	"net/http"

	"greensignal-engine/internal/events"
)

type HealthHandler struct {
	Hub *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{"ok": true}
	if h.Hub != nil {
		out["sse_clients"] = h.Hub.ClientCount()
	}
	writeJSON(w, out)
}
