package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachJSON(t *testing.T) {
	bag := NewBag(nil)
	bag.New().SetMessage("foo").SetTypes("success").Dismiss()
	list := bag.Collect()

	tests := []struct {
		name string
		body string
		path string
		want string
	}{
		{
			name: "default key",
			body: `{"data":{"id":1}}`,
			want: `{"data":{"id":1},"_alerts":[{"message":"foo","types":["success"],"dismissible":true}]}`,
		},
		{
			name: "custom dotted key creates objects",
			body: `{"data":{"id":1}}`,
			path: "meta.notices",
			want: `{"data":{"id":1},"meta":{"notices":[{"message":"foo","types":["success"],"dismissible":true}]}}`,
		},
		{
			name: "dotted key merges into existing object",
			body: `{"meta":{"page":2}}`,
			path: "meta.notices",
			want: `{"meta":{"page":2,"notices":[{"message":"foo","types":["success"],"dismissible":true}]}}`,
		},
		{
			name: "existing value is overwritten",
			body: `{"_alerts":"stale"}`,
			want: `{"_alerts":[{"message":"foo","types":["success"],"dismissible":true}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := AttachJSON([]byte(tt.body), tt.path, list)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}

func TestAttachJSON_EmptyList(t *testing.T) {
	out, err := AttachJSON([]byte(`{"ok":true}`), "", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"_alerts":[]}`, string(out))
}

func TestAttachJSON_NonObjectBodyUnchanged(t *testing.T) {
	bag := NewBag(nil)
	bag.New().SetMessage("foo")
	list := bag.Collect()

	for _, body := range []string{`[1,2,3]`, `"text"`, ``, `not json`, `{"broken":`} {
		out, err := AttachJSON([]byte(body), "", list)
		require.NoError(t, err)
		assert.Equal(t, body, string(out))
	}
}
