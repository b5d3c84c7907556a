// Package i18n provides the YAML message catalog used to translate alerts.
package i18n

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog holds messages per locale. Keys are dotted paths into the YAML
// document, so nested maps flatten into "auth.failed" style keys.
//
//	en:
//	  cart:
//	    saved: "Saved :name's cart"
//	    items: "{0} No items|{1} One item|[2,*] :count items"
type Catalog struct {
	mu       sync.RWMutex
	fallback language.Tag
	tags     []language.Tag
	messages map[string]map[string]string
	matcher  language.Matcher
}

// New returns an empty catalog falling back to fallback.
func New(fallback string) (*Catalog, error) {
	tag, err := language.Parse(fallback)
	if err != nil {
		return nil, errors.Wrapf(err, "parse fallback locale %q", fallback)
	}
	c := &Catalog{
		fallback: tag,
		messages: make(map[string]map[string]string),
	}
	c.rebuild()
	return c, nil
}

// LoadFile reads a catalog from a YAML file keyed by locale.
func LoadFile(path, fallback string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read translations")
	}
	c, err := New(fallback)
	if err != nil {
		return nil, err
	}
	if err := c.LoadYAML(raw); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadYAML merges a YAML document keyed by locale into the catalog.
func (c *Catalog) LoadYAML(raw []byte) error {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, "decode translations")
	}
	for locale, tree := range doc {
		nested, ok := tree.(map[string]interface{})
		if !ok {
			return errors.Errorf("translations for %q must be a mapping", locale)
		}
		flat := make(map[string]string)
		flatten("", nested, flat)
		if err := c.Add(locale, flat); err != nil {
			return err
		}
	}
	return nil
}

// Add merges messages for locale.
func (c *Catalog) Add(locale string, messages map[string]string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return errors.Wrapf(err, "parse locale %q", locale)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	dst, ok := c.messages[tag.String()]
	if !ok {
		dst = make(map[string]string, len(messages))
		c.messages[tag.String()] = dst
	}
	for k, v := range messages {
		dst[k] = v
	}
	c.rebuildLocked()
	return nil
}

// Locales returns the loaded locales.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate returns the message for key in locale, falling back to the
// fallback locale and then to key itself.
func (c *Catalog) Translate(key string, replace map[string]string, locale string) string {
	msg, ok := c.lookup(key, locale)
	if !ok {
		return key
	}
	return Replace(msg, replace)
}

// Choice picks the plural form of key for number. Forms are separated by "|"
// and may be prefixed with "{n}" or "[min,max]" ranges where max may be "*".
// Unprefixed forms use the first form for exactly one and the last otherwise.
// The :count placeholder receives number.
func (c *Catalog) Choice(key string, number int, replace map[string]string, locale string) string {
	msg, ok := c.lookup(key, locale)
	if !ok {
		return key
	}
	merged := map[string]string{"count": fmt.Sprint(number)}
	for k, v := range replace {
		merged[k] = v
	}
	return Replace(choose(msg, number), merged)
}

func (c *Catalog) lookup(key, locale string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, tag := range c.candidates(locale) {
		if msg, ok := c.messages[tag.String()][key]; ok {
			return msg, true
		}
	}
	return "", false
}

func (c *Catalog) candidates(locale string) []language.Tag {
	if locale == "" || c.matcher == nil {
		return []language.Tag{c.fallback}
	}
	desired, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(desired) == 0 {
		return []language.Tag{c.fallback}
	}
	_, index, conf := c.matcher.Match(desired...)
	if conf == language.No {
		return []language.Tag{c.fallback}
	}
	return []language.Tag{c.tags[index], c.fallback}
}

func (c *Catalog) rebuild() {
	c.mu.Lock()
	c.rebuildLocked()
	c.mu.Unlock()
}

func (c *Catalog) rebuildLocked() {
	c.tags = make([]language.Tag, 0, len(c.messages))
	// Fallback first so it wins ties.
	if _, ok := c.messages[c.fallback.String()]; ok {
		c.tags = append(c.tags, c.fallback)
	}
	others := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		if locale != c.fallback.String() {
			others = append(others, locale)
		}
	}
	sort.Strings(others)
	for _, locale := range others {
		c.tags = append(c.tags, language.Make(locale))
	}

	if len(c.tags) == 0 {
		c.matcher = nil
		return
	}
	c.matcher = language.NewMatcher(c.tags)
}

func flatten(prefix string, tree map[string]interface{}, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Replace substitutes :name, :Name and :NAME placeholders. Longer names are
// replaced first so ":username" is not clobbered by ":user".
func Replace(msg string, replace map[string]string) string {
	if len(replace) == 0 {
		return msg
	}
	names := make([]string, 0, len(replace))
	for k := range replace {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	title := cases.Title(language.Und, cases.NoLower)
	pairs := make([]string, 0, len(names)*6)
	for _, name := range names {
		v := replace[name]
		pairs = append(pairs,
			":"+strings.ToUpper(name), strings.ToUpper(v),
			":"+title.String(name), title.String(v),
			":"+name, v,
		)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
