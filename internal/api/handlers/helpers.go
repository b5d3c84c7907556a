package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pratik-mahalle/flashalerts/internal/pkg/errors"
	"github.com/pratik-mahalle/flashalerts/internal/pkg/utils"
)

// respondError maps err to an API error body
func respondError(w http.ResponseWriter, err error) {
	utils.WriteError(w, errors.FromError(err))
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return err
}

// splitList parses a comma separated query value
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
