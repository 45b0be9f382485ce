// Package config loads, validates and persists the engine's YAML config.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Register struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"register"`

	Cache struct {
		ResolveTTLHours   int `yaml:"resolve_ttl_hours"`
		ProfileTTLHours   int `yaml:"profile_ttl_hours"`
		JobsTTLMinutes    int `yaml:"jobs_ttl_minutes"`
		ResolveMaxEntries int `yaml:"resolve_max_entries"`
		ProfileMaxEntries int `yaml:"profile_max_entries"`
		JobsMaxEntries    int `yaml:"jobs_max_entries"`
	} `yaml:"cache"`

	RateLimit struct {
		WindowMS int `yaml:"window_ms"`
		Max      int `yaml:"max"`
	} `yaml:"rate_limit"`

	Commitments struct {
		RecordsPath    string `yaml:"records_path"`
		IndexPath      string `yaml:"index_path"`
		FuzzyThreshold int    `yaml:"fuzzy_threshold"`
	} `yaml:"commitments"`

	Sector struct {
		IntensityPath string `yaml:"intensity_path"`
	} `yaml:"sector"`

	JobSearch struct {
		AppID          string `yaml:"app_id"`
		Country        string `yaml:"country"`
		ResultsPerPage int    `yaml:"results_per_page"`
	} `yaml:"jobsearch"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) ResolveTTL() time.Duration {
	return time.Duration(c.Cache.ResolveTTLHours) * time.Hour
}

func (c Config) ProfileTTL() time.Duration {
	return time.Duration(c.Cache.ProfileTTLHours) * time.Hour
}

func (c Config) JobsTTL() time.Duration {
	return time.Duration(c.Cache.JobsTTLMinutes) * time.Minute
}

func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowMS) * time.Millisecond
}
