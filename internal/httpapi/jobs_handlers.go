package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"greensignal-engine/internal/cache"
	"greensignal-engine/internal/jobsearch"
)

type JobsHandler struct {
	Client JobSearcher
	Cache  *cache.Cache[jobsearch.Response]
}

// Search proxies the upstream job search, cached by query fingerprint.
func (h JobsHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := jobsearch.Query{
		Q:          strings.TrimSpace(params.Get("q")),
		Where:      strings.TrimSpace(params.Get("location")),
		RemoteOnly: params.Get("remote_only") == "true",
	}
	if q.Q == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_query", "q query parameter is required")
		return
	}
	if v := params.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			q.Page = page
		}
	}
	if v := params.Get("distance"); v != "" {
		if km, err := strconv.ParseFloat(v, 64); err == nil && km > 0 {
			q.RadiusKm = km
		}
	}

	key := jobsKey(q)
	if res, ok := h.Cache.Get(key); ok {
		writeJSON(w, map[string]any{"results": res.Results, "count": res.Count, "cached": true})
		return
	}

	res, err := h.Client.Search(r.Context(), q)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "jobsearch_unavailable", "job search upstream failed")
		return
	}
	h.Cache.Set(key, res)
	writeJSON(w, map[string]any{"results": res.Results, "count": res.Count, "cached": false})
}

func jobsKey(q jobsearch.Query) string {
	b, _ := json.Marshal(q)
	return string(b)
}
