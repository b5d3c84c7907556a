package dto

import "github.com/pratik-mahalle/flashalerts/pkg/alerts"

// AlertDTO is an alert as seen by API clients, including the fields the
// public wire form leaves out.
type AlertDTO struct {
	Index       int           `json:"index"`
	Message     string        `json:"message"`
	Types       []string      `json:"types"`
	Tags        []string      `json:"tags"`
	Dismissible bool          `json:"dismissible"`
	PersistKey  string        `json:"persistKey,omitempty"`
	Links       []alerts.Link `json:"links,omitempty"`
}

// NewAlertDTO converts an alert for a response.
func NewAlertDTO(a *alerts.Alert) AlertDTO {
	return AlertDTO{
		Index:       a.Index(),
		Message:     a.Message(),
		Types:       a.Types(),
		Tags:        a.Tags(),
		Dismissible: a.Dismissible(),
		PersistKey:  a.PersistKey(),
		Links:       a.Links(),
	}
}

// NewAlertDTOs converts a list of alerts.
func NewAlertDTOs(list []*alerts.Alert) []AlertDTO {
	out := make([]AlertDTO, len(list))
	for i, a := range list {
		out[i] = NewAlertDTO(a)
	}
	return out
}

// LinkRequest is a placeholder link in an alert creation request
type LinkRequest struct {
	Replace string `json:"replace" validate:"required"`
	URL     string `json:"url" validate:"required"`
	NewTab  bool   `json:"newTab"`
}

// CreateAlertRequest represents an alert creation request
type CreateAlertRequest struct {
	Message     string        `json:"message" validate:"required,max=2000"`
	Raw         bool          `json:"raw"`
	Types       []string      `json:"types" validate:"max=8,dive,dotted"`
	Tags        []string      `json:"tags,omitempty" validate:"max=8,dive,dotted"`
	Dismissible bool          `json:"dismissible"`
	PersistKey  string        `json:"persistKey,omitempty" validate:"omitempty,max=128,dotted"`
	Links       []LinkRequest `json:"links,omitempty" validate:"max=8,dive"`
}

// QuickAlertRequest carries the arguments of a quick alert: a message, or a
// translation key with optional replacements and locale.
type QuickAlertRequest struct {
	Args []interface{} `json:"args"`
}

// FlashForm is the form posted by the demo page
type FlashForm struct {
	Message string `validate:"required,max=500"`
	Type    string `validate:"omitempty,dotted"`
	Persist string `validate:"omitempty,max=128,dotted"`
}
