package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alertsFile = `[
  {"message": "Saved {here}", "types": ["success"], "dismissible": true,
   "links": [{"replace": "here", "url": "/drafts/1", "blank": false}]},
  {"message": "Sidebar only", "types": ["info"], "tags": ["sidebar"]}
]`

func runRender(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	viper.SetDefault("renderer", "bootstrap")

	cmd := newRenderCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.json")
	require.NoError(t, os.WriteFile(path, []byte(alertsFile), 0o600))

	tests := []struct {
		name     string
		args     []string
		contains []string
		missing  []string
	}{
		{
			name: "default tags with bootstrap",
			args: []string{path},
			contains: []string{
				`<div class="alert alert-success fade show alert-dismissible" role="alert">`,
				`Saved <a href="/drafts/1">here</a>`,
			},
			missing: []string{"Sidebar only"},
		},
		{
			name:     "tag filter",
			args:     []string{path, "--tags", "sidebar"},
			contains: []string{"Sidebar only"},
			missing:  []string{"Saved"},
		},
		{
			name:     "tailwind driver",
			args:     []string{path, "--driver", "tailwind"},
			contains: []string{"bg-green-100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runRender(t, "", tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderCmd_Stdin(t *testing.T) {
	out, err := runRender(t, `[{"message":"From stdin","types":["warning"]}]`, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "From stdin")

	out, err = runRender(t, `[]`, "-")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderCmd_Errors(t *testing.T) {
	_, err := runRender(t, `{"message":`, "-")
	assert.Error(t, err)

	_, err = runRender(t, `[]`, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = runRender(t, `[{"message":"x"}]`, "-", "--driver", "nope")
	assert.Error(t, err)
}

func TestQuickArgs(t *testing.T) {
	assert.Empty(t, quickArgs(nil, nil, ""))
	assert.Equal(t, []interface{}{"Saved"}, quickArgs([]string{"Saved"}, nil, ""))
	assert.Equal(t,
		[]interface{}{"cart.saved", map[string]string{"name": "Ana"}},
		quickArgs([]string{"cart.saved"}, map[string]string{"name": "Ana"}, ""))
	assert.Equal(t,
		[]interface{}{"cart.saved", map[string]string{}, "es"},
		quickArgs([]string{"cart.saved"}, nil, "es"))
}

func TestFormatTypes(t *testing.T) {
	assert.Equal(t, "-", formatTypes(nil))
	assert.Equal(t, "[+] success", formatTypes([]string{"success"}))
	assert.Equal(t, "[!] danger,success", formatTypes([]string{"danger", "success"}))
	assert.Equal(t, "info", formatTypes([]string{"info"}))
}
