// Package external contains clients for collaborating services. The only one
// today is the narration service, which turns structured assessment results
// into short plain-language summaries for patient-facing views.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/medrisk-server/internal/cache"
	"github.com/medrisk-server/internal/domain"
)

// NarratorClient calls the narration service with rate limiting and a
// circuit breaker so a slow or failing collaborator cannot stall assessments.
type NarratorClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	rateLimit  *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	cache      *cache.NarrationCache
	log        *logrus.Logger
}

// narrationRequest is the wire format sent to the narration service.
type narrationRequest struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// narrationResponse is the wire format returned by the narration service.
type narrationResponse struct {
	Text string `json:"text"`
}

// NewNarratorClient creates a new narration client. The cache is optional;
// pass nil to disable narration caching.
func NewNarratorClient(config domain.NarrationConfig, narrationCache *cache.NarrationCache, logger *logrus.Logger) *NarratorClient {
	if logger == nil {
		logger = logrus.New()
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	rateLimit := config.RateLimit
	if rateLimit == 0 {
		rateLimit = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "Narrator",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &NarratorClient{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimit: rate.NewLimiter(rate.Limit(rateLimit), 1),
		breaker:   breaker,
		cache:     narrationCache,
		log:       logger,
	}
}

// NarrateRisk produces a plain-language summary of a single-medication
// risk assessment.
func (n *NarratorClient) NarrateRisk(ctx context.Context, result domain.MedicationRiskResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal risk result: %w", err)
	}
	return n.narrate(ctx, "risk", payload)
}

// NarrateInteractions produces a plain-language summary of detected
// interactions across a medication list.
func (n *NarratorClient) NarrateInteractions(ctx context.Context, interactions []domain.DetectedInteraction) (string, error) {
	payload, err := json.Marshal(interactions)
	if err != nil {
		return "", fmt.Errorf("failed to marshal interactions: %w", err)
	}
	return n.narrate(ctx, "interactions", payload)
}

func (n *NarratorClient) narrate(ctx context.Context, kind string, payload []byte) (string, error) {
	digest := cache.AssessmentDigest(append([]byte(kind+":"), payload...))

	if n.cache != nil {
		text, found, err := n.cache.Get(ctx, digest)
		if err != nil {
			n.log.WithError(err).Warn("Narration cache lookup failed")
		}
		if found {
			return text, nil
		}
	}

	// Rate limiting
	if err := n.rateLimit.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed: %w", err)
	}

	result, err := n.breaker.Execute(func() (interface{}, error) {
		return n.callNarrationService(ctx, kind, payload)
	})
	if err != nil {
		return "", err
	}

	text := result.(string)

	if n.cache != nil {
		if err := n.cache.Set(ctx, digest, text, 0); err != nil {
			n.log.WithError(err).Warn("Failed to cache narration")
		}
	}

	return text, nil
}

func (n *NarratorClient) callNarrationService(ctx context.Context, kind string, payload []byte) (string, error) {
	reqBody, err := json.Marshal(narrationRequest{
		Kind:    kind,
		Payload: payload,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/v1/narrate", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("narration request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("narration service returned %d: %s", resp.StatusCode, string(body))
	}

	var decoded narrationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode narration response: %w", err)
	}

	return decoded.Text, nil
}
