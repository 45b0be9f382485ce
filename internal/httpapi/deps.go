package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"greensignal-engine/internal/cache"
	"greensignal-engine/internal/config"
	"greensignal-engine/internal/enrich"
	"greensignal-engine/internal/events"
	"greensignal-engine/internal/jobsearch"
)

// JobSearcher is the slice of the job-search client the API needs.
type JobSearcher interface {
	Search(ctx context.Context, q jobsearch.Query) (jobsearch.Response, error)
}

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Enricher *enrich.Service

	Jobs      JobSearcher
	JobsCache *cache.Cache[jobsearch.Response]
}
