// Package jobsearch proxies the upstream job-search API and canonicalizes
// its loosely-shaped responses before anything downstream sees them.
package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

type Query struct {
	Q          string  `json:"q"`
	Where      string  `json:"where"`
	Page       int     `json:"page"`
	RadiusKm   float64 `json:"radius_km,omitempty"`
	RemoteOnly bool    `json:"remote_only"`
}

// Job is the canonical listing shape. The upstream "company" field may be a
// string or an object, and location names come in three flavors; all of that
// is resolved here at the ingestion boundary.
type Job struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	RedirectURL        string   `json:"redirect_url"`
	Created            string   `json:"created"`
	DescriptionSnippet string   `json:"description_snippet"`
	LocationName       string   `json:"location_name"`
	Lat                *float64 `json:"lat"`
	Lon                *float64 `json:"lon"`
}

type rawCompany struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	asString    string
}

func (c *rawCompany) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &c.asString)
	}
	type alias rawCompany
	return json.Unmarshal(b, (*alias)(c))
}

func (c *rawCompany) resolve() string {
	if c == nil {
		return ""
	}
	if c.asString != "" {
		return c.asString
	}
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

type rawLocation struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
	Name        string   `json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (l *rawLocation) resolveName() string {
	if l == nil {
		return ""
	}
	if l.DisplayName != "" {
		return l.DisplayName
	}
	if len(l.Area) > 0 {
		return strings.Join(l.Area, ", ")
	}
	return l.Name
}

type rawJob struct {
	ID                 json.RawMessage `json:"id"`
	Title              string          `json:"title"`
	Company            *rawCompany     `json:"company"`
	RedirectURL        string          `json:"redirect_url"`
	URL                string          `json:"url"`
	Created            string          `json:"created"`
	Description        string          `json:"description"`
	DescriptionSnippet string          `json:"description_snippet"`
	Location           *rawLocation    `json:"location"`
	Latitude           *float64        `json:"latitude"`
	Longitude          *float64        `json:"longitude"`
}

type rawResponse struct {
	Results []rawJob `json:"results"`
	Count   *int     `json:"count"`
}

type Response struct {
	Results []Job `json:"results"`
	Count   int   `json:"count"`
}

type Config struct {
	AppID          string
	AppKey         string
	Country        string
	ResultsPerPage int
}

type Client struct {
	Cfg     Config
	BaseURL string
	HC      *http.Client

	limiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.Country == "" {
		cfg.Country = "gb"
	}
	if cfg.ResultsPerPage <= 0 {
		cfg.ResultsPerPage = 20
	}
	return &Client{
		Cfg:     cfg,
		BaseURL: defaultBaseURL,
		HC:      &http.Client{Timeout: 20 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}
}

func (c *Client) buildURL(q Query) string {
	page := q.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("app_id", c.Cfg.AppID)
	params.Set("app_key", c.Cfg.AppKey)
	params.Set("results_per_page", fmt.Sprint(c.Cfg.ResultsPerPage))

	what := strings.TrimSpace(q.Q)
	if q.RemoteOnly {
		what = strings.TrimSpace(what + " remote")
	}
	if what != "" {
		params.Set("what", what)
	}
	if where := strings.TrimSpace(q.Where); where != "" {
		params.Set("where", where)
	}
	if q.RadiusKm > 0 {
		params.Set("distance", fmt.Sprint(q.RadiusKm))
	}

	return fmt.Sprintf("%s/%s/search/%d?%s", c.BaseURL, c.Cfg.Country, page, params.Encode())
}

func normalizeJob(r rawJob) Job {
	id := strings.Trim(string(r.ID), `"`)
	if id == "" || id == "null" {
		if r.RedirectURL != "" {
			id = r.RedirectURL
		} else {
			id = r.URL
		}
	}

	redirect := r.RedirectURL
	if redirect == "" {
		redirect = r.URL
	}

	snippet := r.DescriptionSnippet
	if snippet == "" {
		snippet = r.Description
	}

	lat, lon := r.Latitude, r.Longitude
	if lat == nil && r.Location != nil {
		lat = r.Location.Latitude
	}
	if lon == nil && r.Location != nil {
		lon = r.Location.Longitude
	}

	return Job{
		ID:                 id,
		Title:              r.Title,
		Company:            r.Company.resolve(),
		RedirectURL:        redirect,
		Created:            r.Created,
		DescriptionSnippet: snippet,
		LocationName:       r.Location.resolveName(),
		Lat:                lat,
		Lon:                lon,
	}
}

// Search runs one page of the upstream search and returns canonical jobs.
func (c *Client) Search(ctx context.Context, q Query) (Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(q), nil)
	if err != nil {
		return Response{}, err
	}

	res, err := c.HC.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("job search: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Response{}, fmt.Errorf("job search failed with %d", res.StatusCode)
	}

	var payload rawResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Response{}, fmt.Errorf("job search decode: %w", err)
	}

	out := Response{Results: make([]Job, 0, len(payload.Results))}
	for _, r := range payload.Results {
		out.Results = append(out.Results, normalizeJob(r))
	}
	if payload.Count != nil {
		out.Count = *payload.Count
	} else {
		out.Count = len(out.Results)
	}
	return out, nil
}
