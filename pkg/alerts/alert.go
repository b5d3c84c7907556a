package alerts

import (
	"encoding/json"
	"html"
	"net/url"
	"sort"
	"strings"
)

// Link is a placeholder substitution applied to an alert message at render time.
type Link struct {
	Replace string `json:"replace"`
	URL     string `json:"url"`
	Blank   bool   `json:"blank"`
}

// Plain is the public wire form of an alert.
type Plain struct {
	Message     string   `json:"message"`
	Types       []string `json:"types"`
	Dismissible bool     `json:"dismissible"`
}

// Record is the full-fidelity form used to carry an alert through the session.
type Record struct {
	PersistKey  *string  `json:"persist_key"`
	Message     string   `json:"message"`
	Types       []string `json:"types"`
	Links       []Link   `json:"links"`
	Dismissible bool     `json:"dismissible"`
	Tags        []string `json:"tags"`
}

// Alert is a single user-visible notice owned by a Bag.
//
// Mutators return the receiver so calls can be chained. An inert alert, as
// returned by Bag.When and Bag.Unless when the condition does not hold,
// accepts every mutator and discards it.
type Alert struct {
	bag         *Bag
	index       int
	persistKey  string
	message     string
	types       []string
	links       []Link
	dismissible bool
	tags        []string
	inert       bool
}

func newAlert(bag *Bag, tags []string) *Alert {
	a := &Alert{bag: bag, types: []string{}, links: []Link{}}
	a.tags = sortedCopy(tags)
	return a
}

// FromPlain builds an unbound alert from its public wire form. Types are kept
// in the order given.
func FromPlain(p Plain) *Alert {
	types := p.Types
	if types == nil {
		types = []string{}
	}
	return &Alert{
		message:     p.Message,
		types:       append([]string{}, types...),
		links:       []Link{},
		dismissible: p.Dismissible,
		tags:        []string{},
	}
}

// FromRecord builds an unbound alert from its session form.
func FromRecord(r Record) *Alert {
	a := &Alert{
		message:     r.Message,
		types:       append([]string{}, r.Types...),
		links:       append([]Link{}, r.Links...),
		dismissible: r.Dismissible,
		tags:        append([]string{}, r.Tags...),
	}
	if r.PersistKey != nil {
		a.persistKey = *r.PersistKey
	}
	return a
}

// Index returns the position of the alert inside its Bag.
func (a *Alert) Index() int { return a.index }

// PersistKey returns the key the alert is persisted under, or "".
func (a *Alert) PersistKey() string { return a.persistKey }

// Message returns the (possibly raw HTML) message.
func (a *Alert) Message() string { return a.message }

// Types returns the styling types, sorted.
func (a *Alert) Types() []string { return append([]string{}, a.types...) }

// Tags returns the grouping tags, sorted.
func (a *Alert) Tags() []string { return append([]string{}, a.tags...) }

// Links returns the link substitutions, sorted by placeholder and URL.
func (a *Alert) Links() []Link { return append([]Link{}, a.links...) }

// Dismissible reports whether the alert can be dismissed by the user.
func (a *Alert) Dismissible() bool { return a.dismissible }

// IsInert reports whether the alert discards every mutation.
func (a *Alert) IsInert() bool { return a.inert }

// HasAnyTag reports whether the alert carries at least one of the given tags.
func (a *Alert) HasAnyTag(tags ...string) bool {
	for _, want := range tags {
		for _, have := range a.tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// SetMessage replaces the message verbatim. Callers must escape untrusted input.
func (a *Alert) SetMessage(raw string) *Alert {
	if a.inert {
		return a
	}
	a.message = raw
	return a
}

// Raw is an alias of SetMessage.
func (a *Alert) Raw(raw string) *Alert { return a.SetMessage(raw) }

// SetEscapedMessage HTML-escapes the message before storing it.
func (a *Alert) SetEscapedMessage(message string) *Alert {
	return a.SetMessage(html.EscapeString(message))
}

// Trans sets the message from the Bag translator. Without a translator the key
// itself becomes the message.
func (a *Alert) Trans(key string, replace map[string]string, locale string) *Alert {
	if a.inert {
		return a
	}
	if t := a.translator(); t != nil {
		return a.SetMessage(t.Translate(key, replace, locale))
	}
	return a.SetMessage(key)
}

// TransChoice sets a pluralized message from the Bag translator.
func (a *Alert) TransChoice(key string, number int, replace map[string]string, locale string) *Alert {
	if a.inert {
		return a
	}
	if t := a.translator(); t != nil {
		return a.SetMessage(t.Choice(key, number, replace, locale))
	}
	return a.SetMessage(key)
}

// SetTypes replaces the styling types and sorts them.
func (a *Alert) SetTypes(types ...string) *Alert {
	if a.inert {
		return a
	}
	a.types = sortedCopy(types)
	return a
}

// SetTags replaces the grouping tags and sorts them.
func (a *Alert) SetTags(tags ...string) *Alert {
	if a.inert {
		return a
	}
	a.tags = sortedCopy(tags)
	return a
}

// SetDismissible sets whether the alert can be dismissed.
func (a *Alert) SetDismissible(dismissible bool) *Alert {
	if a.inert {
		return a
	}
	a.dismissible = dismissible
	return a
}

// Dismiss marks the alert as dismissible.
func (a *Alert) Dismiss() *Alert { return a.SetDismissible(true) }

// AddLink registers a substitution of "{placeholder}" in the message. Braces
// around the placeholder are optional.
func (a *Alert) AddLink(placeholder, url string, newTab bool) *Alert {
	if a.inert {
		return a
	}
	a.links = append(a.links, Link{
		Replace: strings.Trim(placeholder, "{}"),
		URL:     url,
		Blank:   newTab,
	})
	sort.SliceStable(a.links, func(i, j int) bool {
		return a.links[i].Replace+a.links[i].URL < a.links[j].Replace+a.links[j].URL
	})
	return a
}

// Away adds a link opening in a new tab.
func (a *Alert) Away(placeholder, url string) *Alert {
	return a.AddLink(placeholder, url, true)
}

// To adds a same-tab link to a path resolved against the Bag base URL.
func (a *Alert) To(placeholder, path string) *Alert {
	if a.inert {
		return a
	}
	return a.AddLink(placeholder, a.resolve(path), false)
}

// PersistAs keeps the alert alive across requests under key until it is
// abandoned or another alert is persisted with the same key. An empty key is
// ignored.
func (a *Alert) PersistAs(key string) *Alert {
	if a.inert || key == "" {
		return a
	}
	if a.persistKey != "" && a.persistKey != key && a.bag != nil {
		a.bag.release(a.persistKey, a.index)
	}
	a.persistKey = key
	if a.bag != nil {
		a.bag.MarkPersisted(key, a.index)
	}
	return a
}

// Abandon removes the alert from persistence. It still renders for the rest
// of the current request.
func (a *Alert) Abandon() *Alert {
	if a.inert {
		return a
	}
	if a.persistKey != "" && a.bag != nil {
		a.bag.release(a.persistKey, a.index)
	}
	a.persistKey = ""
	return a
}

// Plain returns the public wire form.
func (a *Alert) Plain() Plain {
	return Plain{
		Message:     a.message,
		Types:       append([]string{}, a.types...),
		Dismissible: a.dismissible,
	}
}

// Record returns the full-fidelity session form.
func (a *Alert) Record() Record {
	r := Record{
		Message:     a.message,
		Types:       append([]string{}, a.types...),
		Links:       append([]Link{}, a.links...),
		Dismissible: a.dismissible,
		Tags:        append([]string{}, a.tags...),
	}
	if a.persistKey != "" {
		key := a.persistKey
		r.PersistKey = &key
	}
	return r
}

// MarshalJSON encodes the alert in its public wire form.
func (a *Alert) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Plain())
}

// JSON returns the public wire form as a JSON string.
func (a *Alert) JSON() (string, error) {
	b, err := a.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (a *Alert) String() string {
	s, _ := a.JSON()
	return s
}

func (a *Alert) translator() Translator {
	if a.bag == nil {
		return nil
	}
	return a.bag.translator
}

func (a *Alert) resolve(path string) string {
	if a.bag == nil || a.bag.baseURL == nil {
		return path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return a.bag.baseURL.ResolveReference(ref).String()
}

func sortedCopy(in []string) []string {
	out := append([]string{}, in...)
	sort.Strings(out)
	return out
}
