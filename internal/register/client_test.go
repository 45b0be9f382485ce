package register

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSearch(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("q")
		require.Equal(t, "/search/companies", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"company_number":"123","title":"Acme Ltd","company_status":"active","sic_codes":["62020"]}]}`))
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	res, err := c.Search(context.Background(), "Acme & Co")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "123", res.Items[0].CompanyNumber)
	assert.Equal(t, "Acme & Co", gotQuery)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("secret:"))
	assert.Equal(t, wantAuth, gotAuth)
}

func TestClientProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/company/123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"company_number":"123","company_status":"active","sic_codes":["78200"]}`))
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	p, err := c.Profile(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, []string{"78200"}, p.SICCodes)
}

func TestClientUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	_, err := c.Search(context.Background(), "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")

	_, err = c.Profile(context.Background(), "123")
	assert.Error(t, err)
}
