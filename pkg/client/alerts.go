package client

import (
	"context"
	"net/url"
	"strings"
)

// AlertService handles alert-related API calls
type AlertService struct {
	client *Client
}

// CreateAlertRequest represents a request to create an alert
type CreateAlertRequest struct {
	Message     string   `json:"message"`
	Raw         bool     `json:"raw,omitempty"`
	Types       []string `json:"types,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Dismissible bool     `json:"dismissible,omitempty"`
	PersistKey  string   `json:"persistKey,omitempty"`
	Links       []Link   `json:"links,omitempty"`
}

// List retrieves the alerts of the session, optionally filtered by tags
func (s *AlertService) List(ctx context.Context, tags ...string) ([]Alert, *Response, error) {
	path := "/api/v1/alerts"
	if len(tags) > 0 {
		path += "?" + url.Values{"tags": {strings.Join(tags, ",")}}.Encode()
	}

	var list []Alert
	resp, err := s.client.doRequest(ctx, "GET", path, nil, &list)
	if err != nil {
		return nil, nil, err
	}
	return list, resp, nil
}

// Create adds an alert
func (s *AlertService) Create(ctx context.Context, req *CreateAlertRequest) (*Alert, *Response, error) {
	var alert Alert
	resp, err := s.client.doRequest(ctx, "POST", "/api/v1/alerts", req, &alert)
	if err != nil {
		return nil, nil, err
	}
	return &alert, resp, nil
}

// Quick adds an alert of type name through the shorthand form
func (s *AlertService) Quick(ctx context.Context, name string, args ...interface{}) (*Alert, *Response, error) {
	if args == nil {
		args = []interface{}{}
	}
	var alert Alert
	resp, err := s.client.doRequest(ctx, "POST", "/api/v1/alerts/quick/"+url.PathEscape(name), map[string]interface{}{"args": args}, &alert)
	if err != nil {
		return nil, nil, err
	}
	return &alert, resp, nil
}

// Abandon removes the persistent alert stored under key
func (s *AlertService) Abandon(ctx context.Context, key string) (*Response, error) {
	return s.client.doRequest(ctx, "DELETE", "/api/v1/alerts/"+url.PathEscape(key), nil, nil)
}
