// Package enrich provides the optional plain-language enrichment
// capability. Enrichment adds informational findings only; when the
// capability is missing or failing the checkers still complete.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/deaffirst/deafcheck/internal/domain"
)

const (
	envAPIKey   = "DEAFCHECK_AI_API_KEY"
	envEndpoint = "DEAFCHECK_AI_ENDPOINT"

	defaultEndpoint = "https://api.deaffirst.dev/v1/analyze"
	requestTimeout  = 20 * time.Second
)

// Disabled is the no-capability Enricher. Every call reports
// domain.ErrEnrichmentUnavailable.
type Disabled struct{}

// Enrich implements domain.Enricher.
func (Disabled) Enrich(context.Context, string) (*domain.Analysis, error) {
	return nil, domain.ErrEnrichmentUnavailable
}

// Client calls the hosted text-analysis service. It is constructed only
// when an API key is present.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient builds a Client for the given endpoint and key.
func NewClient(endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

// FromEnv resolves the enrichment capability from the environment:
// a Client when DEAFCHECK_AI_API_KEY is set, Disabled otherwise.
func FromEnv() domain.Enricher {
	key := os.Getenv(envAPIKey)
	if key == "" {
		return Disabled{}
	}
	return NewClient(os.Getenv(envEndpoint), key)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Summary      string   `json:"summary"`
	ReadingEase  string   `json:"reading_ease"`
	Observations []string `json:"observations"`
}

// Enrich implements domain.Enricher.
func (c *Client) Enrich(ctx context.Context, text string) (*domain.Analysis, error) {
	if text == "" {
		return nil, domain.ErrEnrichmentUnavailable
	}

	payload, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrichment request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment service returned %d", resp.StatusCode)
	}

	var decoded analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("enrichment response: %w", err)
	}

	return &domain.Analysis{
		Summary:      decoded.Summary,
		ReadingEase:  decoded.ReadingEase,
		Observations: decoded.Observations,
	}, nil
}
