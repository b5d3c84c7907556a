package alertstest

import (
	"encoding/json"
	"strings"
)

// Session is an in-memory alerts.Session for tests. Flashed values survive
// exactly one call to Next.
type Session struct {
	Active bool

	values   map[string][]byte
	flashNew []string
	flashOld []string
}

// NewSession returns an active, empty Session.
func NewSession() *Session {
	return &Session{Active: true, values: make(map[string][]byte)}
}

func (s *Session) IsActive() bool { return s.Active }

func (s *Session) Get(key string, dst interface{}) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (s *Session) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = raw
	return nil
}

func (s *Session) Flash(key string, value interface{}) error {
	if err := s.Put(key, value); err != nil {
		return err
	}
	s.flashNew = append(s.flashNew, key)
	old := s.flashOld[:0]
	for _, k := range s.flashOld {
		if k != key {
			old = append(old, k)
		}
	}
	s.flashOld = old
	return nil
}

func (s *Session) Forget(key string) {
	for k := range s.values {
		if k == key || strings.HasPrefix(k, key+".") {
			delete(s.values, k)
		}
	}
}

// Has reports whether key holds a value.
func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Next simulates the end of a request: values flashed on the previous request
// are forgotten and values flashed on this one become readable once more.
func (s *Session) Next() {
	for _, k := range s.flashOld {
		s.Forget(k)
	}
	s.flashOld = s.flashNew
	s.flashNew = nil
}
