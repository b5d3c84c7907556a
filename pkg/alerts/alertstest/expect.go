// Package alertstest provides helpers for asserting on the alerts an
// application produced during a test.
package alertstest

import (
	"fmt"
	"html"
	"reflect"
	"sort"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

// Expectation filters the alerts of a Bag and asserts on the matches.
type Expectation struct {
	t   assert.TestingT
	bag *alerts.Bag

	message     *string
	types       []string
	links       []alerts.Link
	dismissible *bool
	tags        []string
	anyTag      bool
	persisted   *bool
	keys        []string
}

// Expect starts an expectation over the alerts currently in bag.
func Expect(t assert.TestingT, bag *alerts.Bag) *Expectation {
	return &Expectation{t: t, bag: bag}
}

// WithRaw matches alerts whose message is exactly message.
func (e *Expectation) WithRaw(message string) *Expectation {
	e.message = &message
	return e
}

// WithMessage matches alerts whose message is the escaped form of message.
func (e *Expectation) WithMessage(message string) *Expectation {
	return e.WithRaw(html.EscapeString(message))
}

// WithTypes matches alerts with exactly these types, in any order.
func (e *Expectation) WithTypes(types ...string) *Expectation {
	e.types = append([]string{}, types...)
	sort.Strings(e.types)
	return e
}

// WithAway matches alerts carrying a new-tab link.
func (e *Expectation) WithAway(placeholder, url string) *Expectation {
	return e.withLink(placeholder, url, true)
}

// WithLink matches alerts carrying the given link.
func (e *Expectation) WithLink(placeholder, url string, newTab bool) *Expectation {
	return e.withLink(placeholder, url, newTab)
}

func (e *Expectation) withLink(placeholder, url string, blank bool) *Expectation {
	e.links = append(e.links, alerts.Link{Replace: strings.Trim(placeholder, "{}"), URL: url, Blank: blank})
	sort.SliceStable(e.links, func(i, j int) bool {
		return e.links[i].Replace+e.links[i].URL < e.links[j].Replace+e.links[j].URL
	})
	return e
}

// Dismissible matches dismissible alerts.
func (e *Expectation) Dismissible() *Expectation {
	v := true
	e.dismissible = &v
	return e
}

// NotDismissible matches alerts that cannot be dismissed.
func (e *Expectation) NotDismissible() *Expectation {
	v := false
	e.dismissible = &v
	return e
}

// WithTags matches alerts with exactly these tags.
func (e *Expectation) WithTags(tags ...string) *Expectation {
	e.tags = append([]string{}, tags...)
	sort.Strings(e.tags)
	e.anyTag = false
	return e
}

// WithAnyTag matches alerts carrying at least one of the tags.
func (e *Expectation) WithAnyTag(tags ...string) *Expectation {
	e.tags = append([]string{}, tags...)
	e.anyTag = true
	return e
}

// Persisted matches alerts with a persist key.
func (e *Expectation) Persisted() *Expectation {
	v := true
	e.persisted = &v
	return e
}

// NotPersisted matches alerts without a persist key.
func (e *Expectation) NotPersisted() *Expectation {
	v := false
	e.persisted = &v
	return e
}

// PersistedAs asserts that exactly one alert per key is persisted under keys.
func (e *Expectation) PersistedAs(keys ...string) bool {
	e.keys = keys
	return e.Count(len(keys), fmt.Sprintf("Failed to assert that [%d] persistent alerts exist.", len(keys)))
}

// Exists asserts that at least one alert matches.
func (e *Expectation) Exists() bool {
	return assert.NotEmpty(e.t, e.Matches(), "Failed to assert that at least one alert matches the expectations.")
}

// Missing asserts that no alert matches.
func (e *Expectation) Missing() bool {
	return assert.Empty(e.t, e.Matches(), "Failed to assert that no alert matches the expectations.")
}

// Unique asserts that exactly one alert matches.
func (e *Expectation) Unique() bool {
	return e.Count(1, "Failed to assert that there is only one alert.")
}

// Count asserts that exactly n alerts match.
func (e *Expectation) Count(n int, msgAndArgs ...interface{}) bool {
	matches := e.Matches()
	if len(msgAndArgs) == 0 {
		msgAndArgs = []interface{}{
			fmt.Sprintf("Failed to assert that [%d] alerts match the expected [%d] count.", len(matches), n),
		}
	}
	return assert.Len(e.t, matches, n, msgAndArgs...)
}

// Matches returns the alerts satisfying every expectation set so far.
func (e *Expectation) Matches() []*alerts.Alert {
	var out []*alerts.Alert
	for _, a := range e.bag.Collect() {
		if e.matches(a) {
			out = append(out, a)
		}
	}
	return out
}

func (e *Expectation) matches(a *alerts.Alert) bool {
	if e.message != nil && *e.message != a.Message() {
		return false
	}
	if e.types != nil && !reflect.DeepEqual(e.types, a.Types()) {
		return false
	}
	if e.dismissible != nil && *e.dismissible != a.Dismissible() {
		return false
	}
	if e.tags != nil {
		if e.anyTag {
			if !a.HasAnyTag(e.tags...) {
				return false
			}
		} else if !reflect.DeepEqual(e.tags, a.Tags()) {
			return false
		}
	}
	if e.keys != nil {
		found := false
		for _, k := range e.keys {
			if k == a.PersistKey() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if e.persisted != nil && *e.persisted != (a.PersistKey() != "") {
		return false
	}
	if e.links != nil && !reflect.DeepEqual(e.links, a.Links()) {
		return false
	}
	return true
}
