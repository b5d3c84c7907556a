package render

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

func TestBootstrap_Render(t *testing.T) {
	tests := []struct {
		name  string
		build func(*alerts.Bag)
		want  string
	}{
		{
			name: "maps known types and keeps unknown ones",
			build: func(b *alerts.Bag) {
				b.New().SetMessage("A Bootstrap alert").
					SetTypes("primary", "secondary", "success", "danger", "warning", "info", "light", "dark", "foo", "bar", "dismiss")
			},
			want: `<div class="alerts">
<div class="alert bar alert-danger alert-dark dismiss foo alert-info alert-light alert-primary alert-secondary alert-success alert-warning" role="alert">
A Bootstrap alert
</div>
</div>`,
		},
		{
			name:  "dismissible",
			build: func(b *alerts.Bag) { b.New().SetMessage("A Bootstrap Alert").SetTypes("success", "dark").Dismiss() },
			want: `<div class="alerts">
<div class="alert alert-dark alert-success fade show alert-dismissible" role="alert">
A Bootstrap Alert
<button type="button" class="btn-close" data-bs-dismiss="alert" aria-label="Close"></button>
</div>
</div>`,
		},
		{
			name: "duplicate classes removed",
			build: func(b *alerts.Bag) {
				b.New().SetMessage("A Bootstrap Alert").
					SetTypes("success", "success", "foo", "foo", "foo", "bar", "alert-dismissible").
					Dismiss()
			},
			want: `<div class="alerts">
<div class="alert alert-dismissible bar foo alert-success fade show" role="alert">
A Bootstrap Alert
<button type="button" class="btn-close" data-bs-dismiss="alert" aria-label="Close"></button>
</div>
</div>`,
		},
		{
			name: "links",
			build: func(b *alerts.Bag) {
				b.New().SetMessage("Go to {away} or {here}").SetTypes("info").
					Away("away", "https://www.something.com").
					AddLink("here", "/local", false)
			},
			want: `<div class="alerts">
<div class="alert alert-info" role="alert">
Go to <a href="https://www.something.com" target="_blank">away</a> or <a href="/local">here</a>
</div>
</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := alerts.NewBag([]string{"default"})
			tt.build(bag)

			out, err := NewBootstrap().Render(bag.Collect())
			require.NoError(t, err)
			assert.Equal(t, template.HTML(tt.want), out)
		})
	}
}

func TestTailwind_Render(t *testing.T) {
	bag := alerts.NewBag(nil)
	bag.New().SetMessage("A Tailwind alert").SetTypes("success", "danger", "warning", "info", "light", "dark")
	bag.New().SetMessage("A Tailwind Alert").SetTypes("light", "dark").Dismiss()

	out, err := NewTailwind().Render(bag.Collect())
	require.NoError(t, err)

	assert.Equal(t, template.HTML(`<div class="alerts">
<div class="relative max-w-lg rounded-lg px-4 py-4 mb-2 shadow-md ring-1 danger bg-gray-800 ring-white/10 text-gray-300 bg-blue-100 ring-blue-500/20 text-blue-900 bg-white ring-gray-900/5 text-gray-900 bg-green-100 ring-green-500/20 text-green-900 bg-yellow-100 ring-yellow-500/20 text-yellow-900">
A Tailwind alert
</div>
<div class="relative max-w-lg rounded-lg px-4 py-4 mb-2 shadow-md ring-1 bg-gray-800 ring-white/10 text-gray-300 bg-white ring-gray-900/5 text-gray-900 transition-opacity opacity-100">
<button type="button" class="float-right font-bold px-4 pt-4 pb-4 -mr-4 -mt-4 -mb-4 bg-red-600">×</button>
A Tailwind Alert
</div>
</div>`), out)
}

func TestMessage_UntouchedWithoutLinks(t *testing.T) {
	a := alerts.NewBag(nil).New().SetMessage("<b>{literal}</b>")
	assert.Equal(t, "<b>{literal}</b>", Message(a))
}

func TestNewTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, err := NewTemplateRenderer("missing", BootstrapSkin, nil)
	assert.Error(t, err)
}

func TestNewTemplateRenderer_CustomTemplate(t *testing.T) {
	tmpl := template.Must(template.New("list").Parse(`{{range .}}<p class="{{.Class}}">{{.Message}}</p>{{end}}`))
	r, err := NewTemplateRenderer("list", Skin{Types: map[string][]string{"ok": {"green"}}}, tmpl)
	require.NoError(t, err)

	bag := alerts.NewBag(nil)
	bag.New().SetMessage("done").SetTypes("ok")
	out, err := r.Render(bag.Collect())
	require.NoError(t, err)
	assert.Equal(t, template.HTML(`<p class="green">done</p>`), out)
}
