package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

// Client is the flashalerts API client. It keeps the session cookie between
// calls, so alerts persisted by one call are delivered by the next.
type Client struct {
	baseURL    string
	httpClient *http.Client
	alertsKey  string
}

// Config holds the client configuration
type Config struct {
	BaseURL    string        // API base URL (e.g., "http://localhost:8080")
	AlertsKey  string        // Response key carrying delivered alerts (default: "_alerts")
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// NewClient creates a new API client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.AlertsKey == "" {
		cfg.AlertsKey = alerts.DefaultKey
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Jar == nil {
		jar, _ := cookiejar.New(nil)
		httpClient.Jar = jar
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		alertsKey:  cfg.AlertsKey,
	}
}

// Cookies returns the cookies held for the API host, for saving between runs
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil
	}
	return c.httpClient.Jar.Cookies(u)
}

// SetCookies restores previously saved cookies
func (c *Client) SetCookies(cookies []*http.Cookie) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	c.httpClient.Jar.SetCookies(u, cookies)
}

// Response is the decoded envelope of an API call.
type Response struct {
	Message string
	// Delivered holds the alerts the server attached to the response.
	Delivered []alerts.Plain
}

// doRequest performs an HTTP request and decodes the data field into result
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error APIError `json:"error"`
		}
		if err := json.Unmarshal(respBody, &envelope); err != nil || envelope.Error.Code == "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(respBody))}
		}
		envelope.Error.StatusCode = resp.StatusCode
		return nil, &envelope.Error
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(respBody, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	out := &Response{}
	if raw, ok := fields["message"]; ok {
		_ = json.Unmarshal(raw, &out.Message)
	}
	if raw, ok := fields[c.alertsKey]; ok {
		if err := json.Unmarshal(raw, &out.Delivered); err != nil {
			return nil, fmt.Errorf("failed to parse delivered alerts: %w", err)
		}
	}
	if raw, ok := fields["data"]; ok && result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return out, nil
}

// Alerts returns the alert service
func (c *Client) Alerts() *AlertService {
	return &AlertService{client: c}
}
