package render

import (
	"html"
	"html/template"
	"strings"

	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

// Compiled is an alert prepared for a template.
type Compiled struct {
	Message     template.HTML
	Class       string
	Dismissible bool
}

// Skin describes how a renderer turns alert types into CSS classes.
type Skin struct {
	// Base classes always present, before the type classes.
	Base []string
	// Types maps an alert type to its classes. Unknown types are used verbatim.
	Types map[string][]string
	// Dismiss classes are appended for dismissible alerts.
	Dismiss []string
}

// Compile prepares a for rendering with skin.
func Compile(a *alerts.Alert, skin Skin) Compiled {
	return Compiled{
		Message:     template.HTML(Message(a)),
		Class:       strings.Join(skin.Classes(a), " "),
		Dismissible: a.Dismissible(),
	}
}

// Message returns the alert message with every {placeholder} replaced by its link.
// The message itself is trusted as-is.
func Message(a *alerts.Alert) string {
	msg := a.Message()
	for _, l := range a.Links() {
		anchor := `<a href="` + html.EscapeString(l.URL) + `"`
		if l.Blank {
			anchor += ` target="_blank"`
		}
		anchor += ">" + l.Replace + "</a>"
		msg = strings.ReplaceAll(msg, "{"+l.Replace+"}", anchor)
	}
	return msg
}

// Classes returns the de-duplicated class list for a, keeping first occurrences.
func (s Skin) Classes(a *alerts.Alert) []string {
	classes := append([]string{}, s.Base...)
	for _, t := range a.Types() {
		if mapped, ok := s.Types[t]; ok {
			classes = append(classes, mapped...)
		} else {
			classes = append(classes, t)
		}
	}
	if a.Dismissible() {
		classes = append(classes, s.Dismiss...)
	}

	seen := make(map[string]struct{}, len(classes))
	out := classes[:0]
	for _, c := range classes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
