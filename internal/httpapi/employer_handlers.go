package httpapi

import (
	"database/sql"
	"net/http"
	"strings"

	"greensignal-engine/internal/enrich"
	"greensignal-engine/internal/events"
	"greensignal-engine/internal/register"
	"greensignal-engine/internal/store"
)

type EmployerHandler struct {
	Svc *enrich.Service
	DB  *sql.DB
	Hub *events.Hub
}

func (h EmployerHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := strings.TrimSpace(q.Get("name"))
	if name == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_name", "name query parameter is required")
		return
	}

	candidates, cached, err := h.Svc.Resolve(r.Context(), name, q.Get("hint_location"))
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "register_unavailable", "register lookup failed")
		return
	}
	if candidates == nil {
		candidates = []register.Candidate{}
	}
	writeJSON(w, map[string]any{
		"candidates": candidates,
		"cached":     cached,
	})
}

func (h EmployerHandler) Signals(w http.ResponseWriter, r *http.Request) {
	companyNumber := strings.TrimSpace(r.URL.Query().Get("company_number"))
	if companyNumber == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_company_number", "company_number query parameter is required")
		return
	}

	sig, err := h.Svc.Signals(r.Context(), companyNumber)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "register_unavailable", "profile lookup failed")
		return
	}
	writeJSON(w, sig)
}

func (h EmployerHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := strings.TrimSpace(q.Get("name"))
	if name == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_name", "name query parameter is required")
		return
	}

	override := h.overrideFor(r, q.Get("company_number"), q.Get("site"))
	res := h.Svc.Enrich(r.Context(), name, q.Get("hint_location"), override)

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeEnrichmentCompleted, 1, map[string]any{
		"name":   name,
		"status": res.Status,
	}))
	writeJSON(w, res)
}

// overrideFor prefers an explicit company_number pin over a stored site pin.
func (h EmployerHandler) overrideFor(r *http.Request, companyNumber, site string) *enrich.Override {
	if n := strings.TrimSpace(companyNumber); n != "" {
		return &enrich.Override{CompanyNumber: n}
	}
	if site = strings.TrimSpace(site); site == "" || h.DB == nil {
		return nil
	}
	pin, ok, err := store.GetOverride(r.Context(), h.DB, site)
	if err != nil || !ok {
		return nil
	}
	return &enrich.Override{CompanyNumber: pin.CompanyNumber, CompanyName: pin.CompanyName}
}
