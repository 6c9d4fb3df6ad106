// Package judge0 talks to a Judge0-style isolated judge over HTTP.
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

const backendName = "judge0"

// Language is one entry of GET /languages.
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type submissionRequest struct {
	LanguageID   int      `json:"language_id"`
	SourceCode   string   `json:"source_code"`
	Stdin        string   `json:"stdin"`
	CPUTimeLimit *float64 `json:"cpu_time_limit,omitempty"`
	MemoryLimit  *int64   `json:"memory_limit,omitempty"`
}

type submissionStatus struct {
	ID          *int   `json:"id"`
	Description string `json:"description"`
}

type submissionResponse struct {
	Stdout        *string           `json:"stdout"`
	Stderr        *string           `json:"stderr"`
	CompileOutput *string           `json:"compile_output"`
	Message       *string           `json:"message"`
	Status        *submissionStatus `json:"status"`
	Time          *string           `json:"time"`
	Memory        *int64            `json:"memory"`
}

type Client struct {
	baseURL      string
	apiKey       string
	apiKeyHeader string
	httpClient   *http.Client
}

type ClientOption func(*Client)

// WithAPIKey sends key in header on every request.
func WithAPIKey(header, key string) ClientOption {
	return func(c *Client) {
		c.apiKeyHeader = header
		c.apiKey = key
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	var out []Language
	if err := c.do(ctx, http.MethodGet, "/languages", "languages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Submit(ctx context.Context, req submissionRequest) (*submissionResponse, error) {
	var out submissionResponse
	if err := c.do(ctx, http.MethodPost, "/submissions?wait=true&base64_encoded=false", "submissions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, op string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" && c.apiKeyHeader != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errs.BackendError{Backend: backendName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.BackendError{Backend: backendName, Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &errs.BackendError{Backend: backendName, Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &errs.BackendError{Backend: backendName, Op: op, Body: string(raw), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
