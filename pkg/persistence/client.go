package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hcp-interaction-be/internal/dto"
)

// Result is the structured-log endpoint's success contract.
type Result struct {
	Id      string `json:"id"`
	Message string `json:"message,omitempty"`
}

// NetworkError is a transport-level submission failure; users get a
// generic message, never the raw error.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error during submission, please try again"
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError carries the collaborator's rendered field-level detail.
type ValidationError struct {
	StatusCode int
	Detail     string
}

func (e *ValidationError) Error() string { return e.Detail }

// Client submits final payloads to the structured-log endpoint. The
// endpoint stays an opaque request/response contract; in the default
// deployment it is this service's own /interactions/log_structured route.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Submit(ctx context.Context, payload *dto.LogStructuredRequest) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	url := c.BaseURL + "/interactions/log_structured"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ValidationError{
			StatusCode: resp.StatusCode,
			Detail:     RenderDetail(respBody),
		}
	}

	var out Result
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &NetworkError{Err: err}
	}
	return &out, nil
}

// RenderDetail turns a {"detail": ...} error body into one user-facing
// string. String details pass through verbatim; field-level arrays render
// as "<loc joined by ' -> '>: <msg>" entries joined by "; ".
func RenderDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return "failed to submit interaction"
	}

	var asString string
	if err := json.Unmarshal(envelope.Detail, &asString); err == nil && asString != "" {
		return asString
	}

	var asFields []dto.FieldDetail
	if err := json.Unmarshal(envelope.Detail, &asFields); err == nil && len(asFields) > 0 {
		parts := make([]string, 0, len(asFields))
		for _, fd := range asFields {
			parts = append(parts, fd.String())
		}
		return strings.Join(parts, "; ")
	}

	return "failed to submit interaction"
}
