package utils

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"

	"github.com/pratik-mahalle/flashalerts/internal/i18n"
)

//go:embed messages.yaml
var messages []byte

// Messages returns the settings catalog. Translations at path, when given,
// are merged over the built-in messages.
func Messages(path, fallback string) (*i18n.Catalog, error) {
	catalog, err := i18n.New(fallback)
	if err != nil {
		return nil, err
	}
	if err := catalog.LoadYAML(messages); err != nil {
		return nil, err
	}
	if path == "" {
		return catalog, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read translations")
	}
	if err := catalog.LoadYAML(raw); err != nil {
		return nil, err
	}
	return catalog, nil
}
