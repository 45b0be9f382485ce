package jobsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeJobShapes(t *testing.T) {
	payload := `{
		"results": [
			{"id": 123, "title": "Engineer", "company": {"display_name": "Acme Ltd"},
			 "redirect_url": "https://jobs/1", "created": "2026-01-01",
			 "description": "long text",
			 "location": {"display_name": "Leeds, West Yorkshire", "latitude": 53.8, "longitude": -1.5}},
			{"id": "abc", "title": "Analyst", "company": "Plain String Co",
			 "url": "https://jobs/2",
			 "location": {"area": ["UK", "London"]}},
			{"title": "No ID", "redirect_url": "https://jobs/3"}
		],
		"count": 3
	}`

	var raw rawResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	require.Len(t, raw.Results, 3)

	first := normalizeJob(raw.Results[0])
	assert.Equal(t, "123", first.ID)
	assert.Equal(t, "Acme Ltd", first.Company)
	assert.Equal(t, "Leeds, West Yorkshire", first.LocationName)
	assert.Equal(t, "long text", first.DescriptionSnippet)
	require.NotNil(t, first.Lat)
	assert.Equal(t, 53.8, *first.Lat)

	second := normalizeJob(raw.Results[1])
	assert.Equal(t, "abc", second.ID)
	assert.Equal(t, "Plain String Co", second.Company)
	assert.Equal(t, "UK, London", second.LocationName)
	assert.Equal(t, "https://jobs/2", second.RedirectURL)

	third := normalizeJob(raw.Results[2])
	assert.Equal(t, "https://jobs/3", third.ID, "redirect URL stands in for a missing id")
	assert.Equal(t, "", third.Company)
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/gb/search/1", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "platform engineer remote", q.Get("what"))
		assert.Equal(t, "Leeds", q.Get("where"))
		assert.Equal(t, "10", q.Get("distance"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"Job","company":"Acme"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{AppID: "id", AppKey: "key"})
	c.BaseURL = srv.URL

	res, err := c.Search(context.Background(), Query{
		Q: "platform engineer", Where: "Leeds", Page: 0, RadiusKm: 10, RemoteOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, 1, res.Count, "count falls back to result length")
	assert.Equal(t, "Acme", res.Results[0].Company)
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{AppID: "id", AppKey: "key"})
	c.BaseURL = srv.URL

	_, err := c.Search(context.Background(), Query{Q: "x"})
	assert.Error(t, err)
}
