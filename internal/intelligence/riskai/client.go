// Package riskai is the HTTP client for the external contract analysis
// service. It is the engine's only network boundary: the response is decoded
// strictly into the typed result at this trust boundary, and a body that does
// not decode is reported as an error exactly like a transport failure, so the
// orchestrator falls back to heuristics either way.
package riskai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/procurelens/ProcureLens/internal/analysis"
	"github.com/procurelens/ProcureLens/pkg/errors"
)

// DefaultTimeout is the HTTP client timeout when none is configured.
const DefaultTimeout = 30 * time.Second

// analyzePath is the analysis endpoint, relative to the configured base URL.
const analyzePath = "/v1/analyze"

// Client calls the remote analysis service. It implements analysis.AIClient.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient builds a client for the analysis service at baseURL. The API key
// may be empty when the service does not require one.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "analysis service base URL is required")
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// analyzeRequest is the wire request contract.
type analyzeRequest struct {
	Content      string `json:"content"`
	DocumentType string `json:"documentType"`
	ContractID   string `json:"contractId"`
	ContractName string `json:"contractName"`
}

// Analyze sends the document to the remote service and decodes the response
// into the typed aggregate result. Every failure mode (transport, non-2xx,
// undecodable body) returns an error; the caller decides how to recover.
func (c *Client) Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	body, err := json.Marshal(analyzeRequest{
		Content:      req.Content,
		DocumentType: string(req.DocumentType),
		ContractID:   req.ContractID,
		ContractName: req.ContractName,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "marshal analysis request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "build analysis request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.New().String())
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAIServiceUnavailable, "analysis service request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAIServiceUnavailable, "read analysis response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf(errors.ErrCodeAIServiceUnavailable,
			"analysis service returned HTTP %d", resp.StatusCode)
	}

	// Strict decode: unknown shapes must not pass through as trusted results.
	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.DisallowUnknownFields()
	var result analysis.Result
	if err := dec.Decode(&result); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAIResponseMalformed, "decode analysis response")
	}
	if result.OverallRisk.Band == "" {
		return nil, errors.New(errors.ErrCodeAIResponseMalformed, "analysis response missing overall risk")
	}
	return &result, nil
}
