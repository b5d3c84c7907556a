package alerts

import (
	"net/url"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranslator struct {
	calls []string
}

func (s *stubTranslator) Translate(key string, replace map[string]string, locale string) string {
	s.calls = append(s.calls, key+"|"+locale)
	out := "translated:" + key
	for k, v := range replace {
		out += ":" + k + "=" + v
	}
	return out
}

func (s *stubTranslator) Choice(key string, number int, replace map[string]string, locale string) string {
	if number == 1 {
		return "one:" + key
	}
	return "many:" + key
}

func TestAlert_Defaults(t *testing.T) {
	bag := NewBag([]string{"default"})
	a := bag.New()

	assert.Empty(t, a.Message())
	assert.Empty(t, a.Types())
	assert.False(t, a.Dismissible())
	assert.Equal(t, []string{"default"}, a.Tags())
	assert.Equal(t, "", a.PersistKey())
	assert.False(t, a.IsInert())
}

func TestAlert_Messages(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Alert) *Alert
		want string
	}{
		{
			name: "escaped message",
			set:  func(a *Alert) *Alert { return a.SetEscapedMessage("❤ <script></script>") },
			want: "❤ &lt;script&gt;&lt;/script&gt;",
		},
		{
			name: "raw message",
			set:  func(a *Alert) *Alert { return a.SetMessage("❤ <script></script>") },
			want: "❤ <script></script>",
		},
		{
			name: "empty message",
			set:  func(a *Alert) *Alert { return a.Raw("") },
			want: "",
		},
		{
			name: "translation without translator uses key",
			set:  func(a *Alert) *Alert { return a.Trans("auth.failed", nil, "") },
			want: "auth.failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.set(NewBag(nil).New())
			assert.Equal(t, tt.want, a.Message())
		})
	}
}

func TestAlert_Translation(t *testing.T) {
	tr := &stubTranslator{}
	bag := NewBag(nil, WithTranslator(tr))

	a := bag.New().Trans("cart.saved", map[string]string{"name": "Ana"}, "es")
	assert.Equal(t, "translated:cart.saved:name=Ana", a.Message())
	assert.Equal(t, []string{"cart.saved|es"}, tr.calls)

	assert.Equal(t, "one:apples", bag.New().TransChoice("apples", 1, nil, "").Message())
	assert.Equal(t, "many:apples", bag.New().TransChoice("apples", 10, nil, "").Message())
}

func TestAlert_TypesAndTagsReplaceAndSort(t *testing.T) {
	a := NewBag([]string{"default"}).New()

	a.SetTypes("foo", "bar", "quz")
	assert.Equal(t, []string{"bar", "foo", "quz"}, a.Types())

	a.SetTypes("c")
	assert.Equal(t, []string{"c"}, a.Types())

	a.SetTypes("b", "a", "b")
	assert.Equal(t, []string{"a", "b", "b"}, a.Types())

	a.SetTags("foo", "bar")
	assert.Equal(t, []string{"bar", "foo"}, a.Tags())
	assert.Equal(t, []string{"a", "b", "b"}, a.Types())
}

func TestAlert_Links(t *testing.T) {
	a := NewBag(nil).New().SetMessage("foo {bar} baz {alpha}")

	a.Away("bar", "https://foo-bar.com")
	assert.Equal(t, []Link{{Replace: "bar", URL: "https://foo-bar.com", Blank: true}}, a.Links())

	a.AddLink("{alpha}", "https://z.example", false)
	a.AddLink("alpha", "https://a.example", true)

	assert.Equal(t, []Link{
		{Replace: "alpha", URL: "https://a.example", Blank: true},
		{Replace: "alpha", URL: "https://z.example", Blank: false},
		{Replace: "bar", URL: "https://foo-bar.com", Blank: true},
	}, a.Links())
}

func TestAlert_LinkToResolvesAgainstBaseURL(t *testing.T) {
	base, err := url.Parse("http://localhost:8080/app/")
	require.NoError(t, err)

	a := NewBag(nil, WithBaseURL(base)).New().To("bar", "foo-bar")
	assert.Equal(t, []Link{{Replace: "bar", URL: "http://localhost:8080/app/foo-bar", Blank: false}}, a.Links())

	unbound := NewBag(nil).New().To("bar", "/foo-bar")
	assert.Equal(t, "/foo-bar", unbound.Links()[0].URL)
}

func TestAlert_Dismiss(t *testing.T) {
	a := NewBag(nil).New()
	assert.False(t, a.Dismissible())

	a.Dismiss()
	assert.True(t, a.Dismissible())

	a.SetDismissible(false)
	assert.False(t, a.Dismissible())
}

func TestAlert_PlainExcludesSessionFields(t *testing.T) {
	a := NewBag([]string{"default"}).New().
		SetMessage("foo").
		SetTypes("foo", "bar").
		Dismiss().
		Away("x", "https://x.example").
		PersistAs("baz")

	assert.Equal(t, Plain{Message: "foo", Types: []string{"bar", "foo"}, Dismissible: true}, a.Plain())

	s, err := a.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"message":"foo","types":["bar","foo"],"dismissible":true}`, s)
	assert.Equal(t, s, a.String())
}

func TestAlert_EmptyTypesEncodeAsArray(t *testing.T) {
	a := NewBag(nil).New().SetMessage("foo")
	assert.Equal(t, `{"message":"foo","types":[],"dismissible":false}`, a.String())
}

func TestAlert_RecordRoundTrip(t *testing.T) {
	a := NewBag([]string{"default"}).New().
		SetMessage("foo").
		SetTypes("warning").
		SetTags("b", "a").
		Away("x", "https://x.example").
		PersistAs("trial.expiring")

	r := a.Record()
	require.NotNil(t, r.PersistKey)
	assert.Equal(t, "trial.expiring", *r.PersistKey)

	back := FromRecord(r)
	assert.Equal(t, a.Message(), back.Message())
	assert.Equal(t, a.Types(), back.Types())
	assert.Equal(t, a.Tags(), back.Tags())
	assert.Equal(t, a.Links(), back.Links())
	assert.Equal(t, a.PersistKey(), back.PersistKey())
}

func TestFromPlain(t *testing.T) {
	a := FromPlain(Plain{Message: "foo", Types: []string{"foo", "bar"}, Dismissible: true})

	assert.Equal(t, "foo", a.Message())
	assert.Equal(t, []string{"foo", "bar"}, a.Types())
	assert.True(t, a.Dismissible())
	assert.Empty(t, a.Tags())
}

func TestAlert_AbandonKeepsAlertInBag(t *testing.T) {
	bag := NewBag(nil)
	a := bag.New().SetMessage("foo").PersistAs("k")
	require.True(t, bag.HasPersistent("k"))

	a.Abandon()

	assert.False(t, bag.HasPersistent("k"))
	assert.Empty(t, bag.Persisted())
	assert.Equal(t, "", a.PersistKey())
	assert.Equal(t, "foo", a.Message())
	assert.Equal(t, []*Alert{a}, bag.Collect())
}

func TestAlert_PersistAsSameKeyTwiceIsIdempotent(t *testing.T) {
	bag := NewBag(nil)
	a := bag.New().PersistAs("k").PersistAs("k")

	assert.Equal(t, []*Alert{a}, bag.Collect())
	assert.Equal(t, map[string]int{"k": a.Index()}, bag.Persisted())
}

func TestAlert_PersistAsEmptyKeyIsIgnored(t *testing.T) {
	bag := NewBag(nil)
	a := bag.New().PersistAs("")

	assert.False(t, bag.HasPersistent(""))
	assert.False(t, bag.IsPersisted(a.Index()))
	assert.Empty(t, a.PersistKey())
	assert.Nil(t, a.Record().PersistKey)

	b := bag.New().PersistAs("k").PersistAs("")
	assert.Equal(t, "k", b.PersistKey())
	assert.True(t, bag.HasPersistent("k"))
}

func TestAlert_PersistAsNewKeyReleasesOldKey(t *testing.T) {
	bag := NewBag(nil)
	a := bag.New().PersistAs("old").PersistAs("new")

	assert.Equal(t, map[string]int{"new": a.Index()}, bag.Persisted())
	assert.Equal(t, "new", a.PersistKey())
}

func TestAlert_Quick(t *testing.T) {
	tr := &stubTranslator{}
	bag := NewBag(nil, WithTranslator(tr))

	tests := []struct {
		name        string
		op          string
		args        []interface{}
		wantTypes   []string
		wantMessage string
		wantErr     bool
	}{
		{name: "camel case becomes kebab type", op: "fooBarBaz", args: []interface{}{"quz"}, wantTypes: []string{"foo-bar-baz"}, wantMessage: "quz"},
		{name: "underscores are preserved", op: "foo_bar_baz", args: []interface{}{"quz"}, wantTypes: []string{"foo_bar_baz"}, wantMessage: "quz"},
		{name: "leading capital", op: "Success", args: []interface{}{"ok"}, wantTypes: []string{"success"}, wantMessage: "ok"},
		{name: "no arguments leaves empty message", op: "info", wantTypes: []string{"info"}, wantMessage: ""},
		{name: "message is escaped", op: "danger", args: []interface{}{"<b>"}, wantTypes: []string{"danger"}, wantMessage: "&lt;b&gt;"},
		{
			name:        "two arguments translate",
			op:          "fooBarQuz",
			args:        []interface{}{"test-key", map[string]string{"foo": "bar"}},
			wantTypes:   []string{"foo-bar-quz"},
			wantMessage: "translated:test-key:foo=bar",
		},
		{
			name:        "three arguments translate with locale",
			op:          "fooBarQuz",
			args:        []interface{}{"test-key", map[string]interface{}{"foo": "bar"}, "test_lang"},
			wantTypes:   []string{"foo-bar-quz"},
			wantMessage: "translated:test-key:foo=bar",
		},
		{name: "four arguments fail", op: "fooBarQuz", args: []interface{}{"foo", "bar", "quz", "qux"}, wantErr: true},
		{name: "non string message fails", op: "fooBarQuz", args: []interface{}{42}, wantErr: true},
		{name: "bad replacements fail", op: "fooBarQuz", args: []interface{}{"key", "notamap"}, wantErr: true},
		{name: "empty name fails", op: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := bag.New().Quick(tt.op, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownOperation))
				assert.True(t, strings.Contains(err.Error(), "*alerts.Alert::"+tt.op+"()"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTypes, a.Types())
			assert.Equal(t, tt.wantMessage, a.Message())
		})
	}
}

func TestAlert_InertDiscardsEverything(t *testing.T) {
	bag := NewBag([]string{"default"})
	a := bag.When(false)

	a.SetMessage("foo").SetTypes("bar").SetTags("x").Dismiss().Away("l", "u").PersistAs("k").Abandon()
	_, err := a.Quick("success", "saved")
	require.NoError(t, err)

	assert.True(t, a.IsInert())
	assert.Empty(t, a.Message())
	assert.Empty(t, a.Types())
	assert.Empty(t, a.Links())
	assert.False(t, a.Dismissible())
	assert.Equal(t, 0, bag.Len())
	assert.False(t, bag.HasPersistent("k"))
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"fooBarBaz":   "foo-bar-baz",
		"foo_bar_baz": "foo_bar_baz",
		"FooBar":      "foo-bar",
		"success":     "success",
		"fooBAR":      "foo-b-a-r",
		"step2Done":   "step2-done",
	}
	for in, want := range tests {
		assert.Equal(t, want, kebab(in), in)
	}
}
