package client

import "github.com/pratik-mahalle/flashalerts/pkg/alerts"

// Alert is an alert as returned by the API
type Alert struct {
	Index       int           `json:"index"`
	Message     string        `json:"message"`
	Types       []string      `json:"types"`
	Tags        []string      `json:"tags"`
	Dismissible bool          `json:"dismissible"`
	PersistKey  string        `json:"persistKey,omitempty"`
	Links       []alerts.Link `json:"links,omitempty"`
}

// Link is a placeholder link of a new alert
type Link struct {
	Replace string `json:"replace"`
	URL     string `json:"url"`
	NewTab  bool   `json:"newTab"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions string `json:"sessions,omitempty"`
}
