// Package register talks to the Companies House API and ranks its search
// results against free-text employer names.
package register

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.company-information.service.gov.uk"

// SearchItem is one raw search hit. Address may arrive as a pre-built
// snippet or as structured parts; BuildAddressSnippet canonicalizes that at
// the ingestion boundary so scoring never sees both shapes.
type SearchItem struct {
	CompanyNumber  string   `json:"company_number"`
	Title          string   `json:"title"`
	CompanyStatus  string   `json:"company_status"`
	AddressSnippet string   `json:"address_snippet"`
	Address        *Address `json:"address,omitempty"`
	SICCodes       []string `json:"sic_codes"`
}

type Address struct {
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	Locality     string `json:"locality"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code"`
}

type SearchResponse struct {
	Items []SearchItem `json:"items"`
}

type Profile struct {
	CompanyNumber string   `json:"company_number"`
	CompanyStatus string   `json:"company_status"`
	SICCodes      []string `json:"sic_codes"`
}

// Client is a thin wrapper over the register API. Requests share a single
// politeness limiter so bursts of enrichments do not hammer the upstream.
type Client struct {
	APIKey  string
	BaseURL string
	HC      *http.Client

	limiter *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HC:      &http.Client{Timeout: 20 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(2), 2),
	}
}

func (c *Client) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.APIKey+":"))
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "application/json")

	res, err := c.HC.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("register request failed with %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(v)
}

func (c *Client) Search(ctx context.Context, query string) (SearchResponse, error) {
	u := fmt.Sprintf("%s/search/companies?q=%s", c.BaseURL, url.QueryEscape(query))
	var out SearchResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		return SearchResponse{}, fmt.Errorf("register search: %w", err)
	}
	return out, nil
}

func (c *Client) Profile(ctx context.Context, companyNumber string) (Profile, error) {
	u := fmt.Sprintf("%s/company/%s", c.BaseURL, url.PathEscape(companyNumber))
	var out Profile
	if err := c.getJSON(ctx, u, &out); err != nil {
		return Profile{}, fmt.Errorf("register profile: %w", err)
	}
	return out, nil
}
