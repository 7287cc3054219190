// Package layouts holds the page shells shared by every full-page response.
package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/myprofile/internal/view"
	cmp "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - My Profile"
	}
	return "My Profile"
}

// Base wraps body in the HTML document shell: stylesheet, htmx, and the toast region
// that out-of-band notifications are swapped into.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		page := c.HTML5(c.HTML5Props{
			Title:    CalculateTitle(title),
			Language: "en",
			Head: []cmp.Node{
				g.Link(g.Rel("stylesheet"), g.Href("/static/profile.css")),
				g.Script(g.Src(htmxSrc), g.Defer()),
			},
			Body: []cmp.Node{
				g.Class("min-h-screen bg-gray-50"),
				g.Main(
					g.Class("container mx-auto p-8"),
					view.AdaptTemplToGomponentContext(ctx, body),
				),
			},
		})
		return page.Render(w)
	})
}
