package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_PutGetForget(t *testing.T) {
	s := New("id", nil)
	require.NoError(t, s.Put("_alerts.persistent", []string{"a"}))
	require.NoError(t, s.Put("_alerts.alerts", []string{"b"}))
	require.NoError(t, s.Put("_alertsx", "kept"))

	var got []string
	ok, err := s.Get("_alerts.persistent", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, got)

	ok, err = s.Get("missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	s.Forget("_alerts")
	assert.Equal(t, []string{"_alertsx"}, s.Keys())
	assert.True(t, s.Dirty())
}

func TestSession_FlashSurvivesOneRequest(t *testing.T) {
	s := New("id", nil)
	require.NoError(t, s.Flash("notice", "hi"))
	s.Age()

	assert.True(t, s.Has("notice"), "visible on the next request")
	s.Age()
	assert.False(t, s.Has("notice"))
}

func TestSession_ReflashedKeyIsNotForgotten(t *testing.T) {
	s := New("id", nil)
	require.NoError(t, s.Flash("notice", "first"))
	s.Age()

	require.NoError(t, s.Flash("notice", "second"))
	s.Age()

	var got string
	ok, err := s.Get("notice", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestSession_Reflash(t *testing.T) {
	s := New("id", nil)
	require.NoError(t, s.Flash("notice", "hi"))
	s.Age()
	s.Reflash()
	s.Age()
	assert.True(t, s.Has("notice"))
}

func TestSession_NilIsInactive(t *testing.T) {
	var s *Session
	assert.False(t, s.IsActive())
	assert.Nil(t, FromContext(context.Background()))
}

func TestSession_Invalidate(t *testing.T) {
	s := New("id", nil)
	require.NoError(t, s.Put("k", 1))
	s.Invalidate()

	assert.False(t, s.IsActive())
	assert.Empty(t, s.Keys())
}
