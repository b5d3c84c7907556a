// Package session implements server-side sessions with one-shot flash data.
package session

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
)

// Data is the persisted form of a session.
type Data struct {
	Values   map[string]json.RawMessage `json:"values"`
	FlashNew []string                   `json:"flash_new,omitempty"`
	FlashOld []string                   `json:"flash_old,omitempty"`
}

// Session holds the values of one client for the duration of a request.
// It is not safe for concurrent use.
type Session struct {
	id     string
	data   *Data
	active bool
	dirty  bool
}

// New returns an active session with the given id and contents. A nil data
// starts the session empty.
func New(id string, data *Data) *Session {
	if data == nil {
		data = &Data{}
	}
	if data.Values == nil {
		data.Values = make(map[string]json.RawMessage)
	}
	return &Session{id: id, data: data, active: true}
}

func (s *Session) ID() string { return s.id }

// IsActive reports whether the session was started. It is safe on a nil Session.
func (s *Session) IsActive() bool { return s != nil && s.active }

// Dirty reports whether the session changed since it was loaded.
func (s *Session) Dirty() bool { return s.dirty }

// Data returns the session contents for storage.
func (s *Session) Data() *Data { return s.data }

// Get decodes the value under key into dst.
func (s *Session) Get(key string, dst interface{}) (bool, error) {
	raw, ok := s.data.Values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

// Has reports whether key holds a value.
func (s *Session) Has(key string) bool {
	_, ok := s.data.Values[key]
	return ok
}

// Put stores value under key until it is forgotten.
func (s *Session) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data.Values[key] = raw
	s.dirty = true
	return nil
}

// Flash stores value under key for the current and the next request only.
func (s *Session) Flash(key string, value interface{}) error {
	if err := s.Put(key, value); err != nil {
		return err
	}
	s.data.FlashNew = appendUnique(s.data.FlashNew, key)
	s.data.FlashOld = remove(s.data.FlashOld, key)
	return nil
}

// Reflash keeps every flashed value for one more request.
func (s *Session) Reflash() {
	for _, k := range s.data.FlashOld {
		s.data.FlashNew = appendUnique(s.data.FlashNew, k)
	}
	s.data.FlashOld = nil
	s.dirty = true
}

// Forget removes key and every key nested under it with a dot.
func (s *Session) Forget(key string) {
	prefix := key + "."
	for k := range s.data.Values {
		if k == key || strings.HasPrefix(k, prefix) {
			delete(s.data.Values, k)
			s.dirty = true
		}
	}
}

// Keys lists the stored keys.
func (s *Session) Keys() []string {
	keys := make([]string, 0, len(s.data.Values))
	for k := range s.data.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Age ends the flash lifetime of a request: values flashed by the previous
// request are forgotten, and values flashed by this one become the previous.
func (s *Session) Age() {
	for _, k := range s.data.FlashOld {
		s.Forget(k)
	}
	if len(s.data.FlashOld) > 0 || len(s.data.FlashNew) > 0 {
		s.dirty = true
	}
	s.data.FlashOld = s.data.FlashNew
	s.data.FlashNew = nil
}

// Invalidate clears every value and marks the session for deletion.
func (s *Session) Invalidate() {
	s.data = &Data{Values: make(map[string]json.RawMessage)}
	s.active = false
	s.dirty = true
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session attached to ctx, or nil.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}

func appendUnique(list []string, key string) []string {
	for _, k := range list {
		if k == key {
			return list
		}
	}
	return append(list, key)
}

func remove(list []string, key string) []string {
	out := list[:0]
	for _, k := range list {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
