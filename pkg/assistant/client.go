package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ExchangeRequest is one user turn sent to the assistant endpoint.
// SessionId is null on the very first turn of a conversation.
type ExchangeRequest struct {
	UserMessage string  `json:"user_message"`
	SessionId   *string `json:"session_id"`
}

// ExchangeResponse is the assistant's reply for one turn. ExtractedData
// holds vendor-named fields destined for the field mapper; FinalActionType
// is the assistant's classification of what it just did.
type ExchangeResponse struct {
	AiResponse      string         `json:"ai_response"`
	SessionId       string         `json:"session_id"`
	ExtractedData   map[string]any `json:"extracted_data,omitempty"`
	FinalActionType string         `json:"final_action_type,omitempty"`
}

// CallError covers both transport failures (StatusCode 0) and non-success
// responses from the assistant endpoint. A cycle hitting one aborts before
// any merge.
type CallError struct {
	StatusCode int
	Detail     string
}

func (e *CallError) Error() string {
	if e.StatusCode == 0 {
		return "assistant unreachable: " + e.Detail
	}
	return fmt.Sprintf("assistant call failed (%d): %s", e.StatusCode, e.Detail)
}

// Client talks to the assistant exchange endpoint. The assistant's own
// extraction model is a black box behind this contract.
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

func (c *Client) Exchange(ctx context.Context, req *ExchangeRequest) (*ExchangeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.BaseURL + "/interactions/log_chat_message"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, &CallError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CallError{StatusCode: resp.StatusCode, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &CallError{StatusCode: resp.StatusCode, Detail: errorDetail(body, resp.Status)}
	}

	var out ExchangeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &CallError{StatusCode: resp.StatusCode, Detail: "malformed assistant response"}
	}
	return &out, nil
}

func errorDetail(body []byte, fallback string) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	return fallback
}
