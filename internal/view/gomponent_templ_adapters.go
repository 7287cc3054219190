package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// AdaptGomponentToTempl lets a gomponents node be used wherever a templ.Component is
// expected, such as the body slot of a templ layout.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if node == nil {
			return nil
		}
		return node.Render(w)
	})
}

// templNode renders a templ component from inside a gomponents tree.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

func (n templNode) Render(w io.Writer) error {
	return n.component.Render(n.ctx, w)
}

// AdaptTemplToGomponent converts a templ component into a gomponents node.
// Gomponents' Render carries no context, so context.Background() is used.
func AdaptTemplToGomponent(component templ.Component) gomponents.Node {
	return AdaptTemplToGomponentContext(context.Background(), component)
}

// AdaptTemplToGomponentContext is AdaptTemplToGomponent with the request context kept.
func AdaptTemplToGomponentContext(ctx context.Context, component templ.Component) gomponents.Node {
	return templNode{ctx: ctx, component: component}
}
