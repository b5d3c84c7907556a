package alerts

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultKey is the session key alerts are stored under.
const DefaultKey = "_alerts"

// Session is the storage the Bridge moves alerts through. Keys are dotted;
// Forget removes a key and every key nested under it.
type Session interface {
	IsActive() bool
	Get(key string, dst interface{}) (bool, error)
	Put(key string, value interface{}) error
	Flash(key string, value interface{}) error
	Forget(key string)
}

// Outcome summarizes what Outbound did with the bag contents.
type Outcome struct {
	Persistent int
	Flashed    int
	Dropped    int
}

// Bridge moves alerts between a Bag and the session at the edges of a request.
type Bridge struct {
	key string
	log zerolog.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLogger sets the logger used for bridge debug output.
func WithLogger(log zerolog.Logger) BridgeOption {
	return func(b *Bridge) { b.log = log }
}

// NewBridge returns a Bridge storing alerts under key, or DefaultKey when key is empty.
func NewBridge(key string, opts ...BridgeOption) *Bridge {
	if key == "" {
		key = DefaultKey
	}
	b := &Bridge{key: key, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Key returns the base session key.
func (b *Bridge) Key() string { return b.key }

// PersistentKey is where durable alerts live between requests.
func (b *Bridge) PersistentKey() string { return b.key + ".persistent" }

// FlashKey is where one-shot alerts wait for the next request.
func (b *Bridge) FlashKey() string { return b.key + ".alerts" }

// Inbound moves the alerts stored in the session into bag, persistent ones
// first, and removes them from the session. It does nothing without an
// active session. Undecodable session data is forgotten along with the rest.
func (b *Bridge) Inbound(sess Session, bag *Bag) (int, error) {
	if !active(sess) {
		return 0, nil
	}

	var persistent, flashed []Record
	if _, err := sess.Get(b.PersistentKey(), &persistent); err != nil {
		sess.Forget(b.key)
		return 0, errors.Wrap(err, "read persistent alerts")
	}
	if _, err := sess.Get(b.FlashKey(), &flashed); err != nil {
		sess.Forget(b.key)
		return 0, errors.Wrap(err, "read flashed alerts")
	}

	bag.AddRecords(persistent...)
	bag.AddRecords(flashed...)
	sess.Forget(b.key)

	n := len(persistent) + len(flashed)
	if n > 0 {
		b.log.Debug().
			Int("persistent", len(persistent)).
			Int("flashed", len(flashed)).
			Msg("alerts hydrated from session")
	}
	return n, nil
}

// Outbound stores the bag contents for later requests and flushes the bag.
// Persisted alerts are put into the session; the rest are flashed only when
// the response is a redirect, and dropped otherwise.
func (b *Bridge) Outbound(sess Session, bag *Bag, redirect bool) (Outcome, error) {
	defer bag.Flush()

	if !active(sess) {
		return Outcome{Dropped: bag.Len()}, nil
	}

	var persistent, rest []Record
	for _, a := range bag.Collect() {
		if bag.IsPersisted(a.Index()) {
			persistent = append(persistent, a.Record())
		} else {
			rest = append(rest, a.Record())
		}
	}

	var out Outcome
	if len(persistent) > 0 {
		if err := sess.Put(b.PersistentKey(), persistent); err != nil {
			return out, errors.Wrap(err, "store persistent alerts")
		}
		out.Persistent = len(persistent)
	}

	if redirect && len(rest) > 0 {
		if err := sess.Flash(b.FlashKey(), rest); err != nil {
			return out, errors.Wrap(err, "flash alerts")
		}
		out.Flashed = len(rest)
	} else {
		out.Dropped = len(rest)
	}

	b.log.Debug().
		Int("persistent", out.Persistent).
		Int("flashed", out.Flashed).
		Int("dropped", out.Dropped).
		Bool("redirect", redirect).
		Msg("alerts moved to session")
	return out, nil
}

// IsRedirect reports whether status is a 3xx redirection.
func IsRedirect(status int) bool {
	return status >= 300 && status < 400
}

func active(sess Session) bool {
	return sess != nil && sess.IsActive()
}
