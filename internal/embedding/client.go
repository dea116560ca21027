// Package embedding provides text embeddings, cosine similarity, and a
// bounded embedding cache for the recommendation pipeline.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Client is an abstraction over embedding providers.
type Client interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	// Dimension returns the vector dimensionality the client produces.
	Dimension() int
	// Model returns the embedding model identifier.
	Model() string
}

// ClientError represents a failure talking to the embedding service.
// Callers map it to the zero-vector fallback; it never escapes the pipeline.
type ClientError struct {
	Op    string
	Cause error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("embedding %s", e.Op)
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// HTTPClient talks to an OpenAI-compatible /v1/embeddings endpoint.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	httpClient *http.Client
	maxRetries int
}

// NewHTTPClient builds an embeddings client from the API key and environment.
// A missing API key is the one configuration error the pipeline cannot
// degrade around, so it fails construction.
func NewHTTPClient(apiKey string, dimension int) (*HTTPClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("EMBEDDINGS_API_KEY"))
	}
	if apiKey == "" {
		return nil, fmt.Errorf("missing EMBEDDINGS_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("EMBEDDINGS_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("EMBEDDINGS_MODEL"))
	if model == "" {
		model = "text-embedding-3-small"
	}

	timeoutSec := 30
	if v := os.Getenv("EMBEDDINGS_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxRetries := 2
	if v := os.Getenv("EMBEDDINGS_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		dimension:  dimension,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

// Dimension returns the configured vector dimensionality.
func (c *HTTPClient) Dimension() int { return c.dimension }

// Model returns the embedding model identifier.
func (c *HTTPClient) Model() string { return c.model }

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// Embed requests embeddings for all texts in one call. Blank inputs are sent
// as a single space so the provider accepts them; results come back in input
// order regardless of the provider's response ordering.
func (c *HTTPClient) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	clean := make([]string, len(texts))
	for i := range texts {
		s := strings.TrimSpace(texts[i])
		if s == "" {
			s = " "
		}
		clean[i] = s
	}

	req := embeddingsRequest{Model: c.model, Input: clean}

	var resp embeddingsResponse
	if err := c.do(ctx, "/v1/embeddings", req, &resp); err != nil {
		return nil, err
	}

	out := make([][]float64, len(clean))
	for _, d := range resp.Data {
		if d.Index >= 0 && d.Index < len(out) {
			out[d.Index] = d.Embedding
		}
	}
	for i, vec := range out {
		if vec == nil {
			return nil, &ClientError{Op: "embed", Cause: fmt.Errorf("response missing vector for input %d", i)}
		}
	}

	return out, nil
}

func (c *HTTPClient) do(ctx context.Context, path string, body, out any) error {
	backoff := time.Second

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return &ClientError{Op: "request", Cause: ctx.Err()}
		}

		raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return &ClientError{Op: "decode", Cause: uErr}
			}
			return nil
		}

		lastErr = err
		if !isRetryable(err) || attempt == c.maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	return &ClientError{Op: "request", Cause: lastErr}
}

func (c *HTTPClient) doOnce(ctx context.Context, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpStatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// isRetryable reports whether an error is worth another attempt: transport
// failures and 429/5xx statuses.
func isRetryable(err error) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return true
}
