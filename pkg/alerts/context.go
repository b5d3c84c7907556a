package alerts

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying bag.
func NewContext(ctx context.Context, bag *Bag) context.Context {
	return context.WithValue(ctx, contextKey{}, bag)
}

// FromContext returns the Bag attached to ctx. When there is none it returns
// a detached empty Bag, so alerts created outside the middleware are simply
// discarded at the end of the request.
func FromContext(ctx context.Context) *Bag {
	if bag, ok := ctx.Value(contextKey{}).(*Bag); ok && bag != nil {
		return bag
	}
	return NewBag(nil)
}
