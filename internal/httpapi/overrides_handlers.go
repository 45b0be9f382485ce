package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"greensignal-engine/internal/events"
	"greensignal-engine/internal/store"
)

type OverridesHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h OverridesHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := store.ListOverrides(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, all)
}

func (h OverridesHandler) Get(w http.ResponseWriter, r *http.Request) {
	site, ok := sitePath(w, r)
	if !ok {
		return
	}
	pin, found, err := store.GetOverride(r.Context(), h.DB, site)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if !found {
		WriteError(w, r, http.StatusNotFound, "not_found", "no override for site")
		return
	}
	writeJSON(w, pin)
}

type putOverrideReq struct {
	CompanyNumber string `json:"company_number"`
	CompanyName   string `json:"company_name"`
}

func (h OverridesHandler) Put(w http.ResponseWriter, r *http.Request) {
	site, ok := sitePath(w, r)
	if !ok {
		return
	}

	var req putOverrideReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	pin, err := store.PutOverride(r.Context(), h.DB, site, req.CompanyNumber, req.CompanyName)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_override", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeOverrideSaved, 1, pin))
	writeJSON(w, pin)
}

func (h OverridesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	site, ok := sitePath(w, r)
	if !ok {
		return
	}

	removed, err := store.DeleteOverride(r.Context(), h.DB, site)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	if removed {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeOverrideDeleted, 1, map[string]any{"site": site}))
	}
	writeJSON(w, map[string]any{"ok": true, "removed": removed})
}

// sitePath extracts {site} from /api/overrides/{site}.
func sitePath(w http.ResponseWriter, r *http.Request) (string, bool) {
	site := strings.TrimPrefix(r.URL.Path, "/api/overrides/")
	site = strings.TrimSpace(site)
	if site == "" || strings.Contains(site, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_site", "expected /api/overrides/{site}")
		return "", false
	}
	return site, true
}
