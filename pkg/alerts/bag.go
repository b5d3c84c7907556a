package alerts

import (
	"encoding/json"
	"net/url"

	"github.com/pkg/errors"
)

// Translator resolves translation keys into messages.
type Translator interface {
	Translate(key string, replace map[string]string, locale string) string
	Choice(key string, number int, replace map[string]string, locale string) string
}

// Option configures a Bag.
type Option func(*Bag)

// WithTranslator sets the translator used by Alert.Trans and Alert.TransChoice.
func WithTranslator(t Translator) Option {
	return func(b *Bag) { b.translator = t }
}

// WithBaseURL sets the URL relative links added with Alert.To resolve against.
func WithBaseURL(u *url.URL) Option {
	return func(b *Bag) { b.baseURL = u }
}

// Bag is the ordered collection of alerts for a single request.
//
// Storage is sparse: removing an alert leaves a hole and new alerts are always
// appended past the highest index ever used, so indexes of surviving alerts
// never change. A Bag is not safe for concurrent use; create one per request.
type Bag struct {
	slots       []*Alert
	persisted   map[string]int
	defaultTags []string
	translator  Translator
	baseURL     *url.URL
}

// NewBag returns an empty Bag whose new alerts carry the given default tags.
func NewBag(tags []string, opts ...Option) *Bag {
	b := &Bag{
		persisted:   make(map[string]int),
		defaultTags: append([]string{}, tags...),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DefaultTags returns the tags injected into each new alert.
func (b *Bag) DefaultTags() []string {
	return append([]string{}, b.defaultTags...)
}

// Persisted returns a copy of the persist key to index map.
func (b *Bag) Persisted() map[string]int {
	out := make(map[string]int, len(b.persisted))
	for k, v := range b.persisted {
		out[k] = v
	}
	return out
}

// IsPersisted reports whether the alert at index is registered under any key.
func (b *Bag) IsPersisted(index int) bool {
	for _, i := range b.persisted {
		if i == index {
			return true
		}
	}
	return false
}

// New creates an alert seeded with the default tags and adds it to the bag.
func (b *Bag) New() *Alert {
	a := newAlert(b, b.defaultTags)
	b.Add(a)
	return a
}

// Add appends alerts to the bag and binds them to it. Alerts already carrying
// a persist key are registered without evicting anything from the sequence.
func (b *Bag) Add(alerts ...*Alert) *Bag {
	for _, a := range alerts {
		if a == nil || a.inert {
			continue
		}
		b.slots = append(b.slots, a)
		a.index = len(b.slots) - 1
		a.bag = b
		if a.persistKey != "" {
			b.persisted[a.persistKey] = a.index
		}
	}
	return b
}

// AddRecords adds alerts rebuilt from their session form.
func (b *Bag) AddRecords(records ...Record) *Bag {
	for _, r := range records {
		b.Add(FromRecord(r))
	}
	return b
}

// AddPlain adds alerts rebuilt from their public wire form. They receive the
// bag default tags, since the wire form carries none.
func (b *Bag) AddPlain(plain ...Plain) *Bag {
	for _, p := range plain {
		a := FromPlain(p)
		a.tags = sortedCopy(b.defaultTags)
		b.Add(a)
	}
	return b
}

// plainFields mirrors Plain so missing members can be told apart from zero
// values.
type plainFields struct {
	Message     *string   `json:"message"`
	Types       *[]string `json:"types"`
	Dismissible *bool     `json:"dismissible"`
}

// FromJSON decodes a public wire form alert and adds it to the bag. The
// payload must be an object carrying message and types; dismissible defaults
// to false.
func (b *Bag) FromJSON(text string) (*Alert, error) {
	var f plainFields
	if err := json.Unmarshal([]byte(text), &f); err != nil {
		return nil, errors.Wrapf(ErrDataFormat, "decode alert: %v", err)
	}
	if f.Message == nil {
		return nil, errors.Wrap(ErrDataFormat, "decode alert: missing message")
	}
	if f.Types == nil {
		return nil, errors.Wrap(ErrDataFormat, "decode alert: missing types")
	}

	p := Plain{Message: *f.Message, Types: *f.Types}
	if f.Dismissible != nil {
		p.Dismissible = *f.Dismissible
	}
	b.AddPlain(p)
	return b.slots[len(b.slots)-1], nil
}

// Collect returns the live alerts in insertion order.
func (b *Bag) Collect() []*Alert {
	out := make([]*Alert, 0, len(b.slots))
	for _, a := range b.slots {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of live alerts.
func (b *Bag) Len() int {
	n := 0
	for _, a := range b.slots {
		if a != nil {
			n++
		}
	}
	return n
}

// Tagged returns the live alerts carrying at least one of the given tags.
func (b *Bag) Tagged(tags ...string) []*Alert {
	var out []*Alert
	for _, a := range b.slots {
		if a != nil && a.HasAnyTag(tags...) {
			out = append(out, a)
		}
	}
	return out
}

// MarkPersisted registers index under key. Any other alert previously
// persisted under the same key is removed from the bag.
func (b *Bag) MarkPersisted(key string, index int) *Bag {
	if current, ok := b.persisted[key]; !ok || current != index {
		b.Abandon(key)
	}
	b.persisted[key] = index
	return b
}

// Abandon removes the alert persisted under key from the bag. It returns false
// when no alert is persisted under key.
func (b *Bag) Abandon(key string) bool {
	index, ok := b.persisted[key]
	if !ok {
		return false
	}
	if index >= 0 && index < len(b.slots) {
		b.slots[index] = nil
	}
	delete(b.persisted, key)
	return true
}

// HasPersistent reports whether an alert is persisted under key.
func (b *Bag) HasPersistent(key string) bool {
	_, ok := b.persisted[key]
	return ok
}

// Flush empties the bag, keeping its configuration.
func (b *Bag) Flush() {
	b.slots = nil
	b.persisted = make(map[string]int)
}

// When creates an alert if condition holds, or an inert alert otherwise.
func (b *Bag) When(condition bool) *Alert {
	if condition {
		return b.New()
	}
	return &Alert{inert: true}
}

// Unless creates an alert if condition does not hold, or an inert alert otherwise.
func (b *Bag) Unless(condition bool) *Alert {
	return b.When(!condition)
}

// WhenFunc evaluates condition against the bag and behaves like When.
func (b *Bag) WhenFunc(condition func(*Bag) bool) *Alert {
	return b.When(condition(b))
}

// UnlessFunc evaluates condition against the bag and behaves like Unless.
func (b *Bag) UnlessFunc(condition func(*Bag) bool) *Alert {
	return b.Unless(condition(b))
}

// Quick creates a new alert and applies the Alert.Quick shorthand to it.
func (b *Bag) Quick(name string, args ...interface{}) (*Alert, error) {
	a, err := newAlert(b, b.defaultTags).Quick(name, args...)
	if err != nil {
		return nil, err
	}
	b.Add(a)
	return a, nil
}

// release drops the persistence entry for key if it still points at index,
// leaving the alert itself in place.
func (b *Bag) release(key string, index int) {
	if current, ok := b.persisted[key]; ok && current == index {
		delete(b.persisted, key)
	}
}
