// Package advisor integrates with the external AI advisory service. The
// advisor returns the same analysis document the engine can assemble
// locally; callers treat any transport or format error as a signal to fall
// back to the engine-only result.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finquest/finquest-api/internal/config"
	"github.com/finquest/finquest-api/internal/models"
)

// ErrMalformedResponse marks an advisor reply that parsed as JSON but does
// not satisfy the analysis schema.
var ErrMalformedResponse = errors.New("advisor response violates analysis schema")

// ErrNotConfigured is returned when no advisor endpoint is configured.
var ErrNotConfigured = errors.New("advisor URL not configured")

// Client handles integration with the advisory service
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new advisor client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.AdvisorURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Analyze submits the canonical profile and returns the advisor's analysis
// document. The caller is expected to fall back to a locally assembled
// analysis on any error.
func (c *Client) Analyze(ctx context.Context, profile models.FinancialProfile) (*models.AnalysisResponse, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	body, err := c.sendRequest(ctx, profile)
	if err != nil {
		return nil, err
	}

	analysis, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Advisor analysis received: score %d, %d audit rows", analysis.OverallScore, len(analysis.Audit))
	return analysis, nil
}

// sendRequest posts the profile to the advisor endpoint
func (c *Client) sendRequest(ctx context.Context, profile models.FinancialProfile) ([]byte, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Log the raw response for debugging
	c.log.Debugf("Advisor response: %s", string(body))

	return body, nil
}

// parseResponse parses and validates the advisor analysis document
func (c *Client) parseResponse(body []byte) (*models.AnalysisResponse, error) {
	var analysis models.AnalysisResponse
	if err := json.Unmarshal(body, &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if analysis.OverallScore < 0 || analysis.OverallScore > 100 {
		return nil, fmt.Errorf("%w: overallScore %d out of range", ErrMalformedResponse, analysis.OverallScore)
	}
	if len(analysis.Audit) == 0 {
		return nil, fmt.Errorf("%w: empty audit", ErrMalformedResponse)
	}

	wp := analysis.WealthProjection
	n := len(wp.Years)
	if n == 0 || len(wp.Conservative) != n || len(wp.Moderate) != n || len(wp.Aggressive) != n {
		return nil, fmt.Errorf("%w: wealth_projection arrays misaligned", ErrMalformedResponse)
	}

	return &analysis, nil
}
