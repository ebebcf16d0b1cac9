// Package upstream implements the outbound client for the external ML
// prediction service. The service is opaque: its response is relayed
// byte-for-byte, never reshaped or validated.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mindtrack/stress-api/internal/api/metrics"
	"github.com/mindtrack/stress-api/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// PredictorClient calls POST {baseURL}/predict with a bounded timeout.
type PredictorClient struct {
	baseURL string
	http    *http.Client
}

// NewPredictorClient builds a client for the prediction service. A
// non-positive timeout falls back to 10 seconds.
func NewPredictorClient(baseURL string, timeout time.Duration) *PredictorClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PredictorClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Predict forwards the questionnaire verbatim and returns the upstream body
// unmodified. Network failures and timeouts surface as ErrUpstreamUnreachable;
// non-2xx responses as ErrUpstream carrying the status and body excerpt.
func (c *PredictorClient) Predict(ctx context.Context, in domain.QuestionnaireInput) (json.RawMessage, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal prediction payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrUpstreamUnreachable, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, excerpt(body))
	}
	return body, nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
