package httpapi

import "net/http"

// NewMux wires every handler; main() wraps the result in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Employer enrichment
	eh := EmployerHandler{Svc: d.Enricher, DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/api/employer/resolve", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.Resolve,
	}))
	mux.HandleFunc("/api/employer/signals", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.Signals,
	}))
	mux.HandleFunc("/api/employer/enrich", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.Enrich,
	}))

	// Job-search proxy
	jh := JobsHandler{Client: d.Jobs, Cache: d.JobsCache}
	mux.HandleFunc("/api/jobs/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Search,
	}))

	// Overrides
	oh := OverridesHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/api/overrides", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: oh.List,
	}))
	mux.HandleFunc("/api/overrides/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    oh.Get,
		http.MethodPut:    oh.Put,
		http.MethodDelete: oh.Delete,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets
	sh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/register", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetRegisterKey,
	}))

	// SSE events
	evh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: evh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{Hub: d.Hub}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
