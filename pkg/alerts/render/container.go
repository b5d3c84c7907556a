package render

import (
	"html/template"

	"github.com/pratik-mahalle/flashalerts/pkg/alerts"
)

// Container renders the alerts of a bag carrying any of Tags.
type Container struct {
	Renderer Renderer
	// Tags filters alerts; empty means the bag default tags.
	Tags []string
}

// Render returns nothing for an empty bag.
func (c Container) Render(bag *alerts.Bag) (template.HTML, error) {
	if bag == nil || bag.Len() == 0 {
		return "", nil
	}
	tags := c.Tags
	if len(tags) == 0 {
		tags = bag.DefaultTags()
	}
	return c.Renderer.Render(bag.Tagged(tags...))
}
