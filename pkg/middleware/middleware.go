package middleware

import (
	"net/http"
	"slices"
)

// System is an ordered middleware chain. The first middleware added is the
// outermost wrapper.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type chain struct {
	wrappers []func(http.Handler) http.Handler
}

// New returns an empty chain.
func New() System {
	return &chain{}
}

func (c *chain) Use(fn func(http.Handler) http.Handler) {
	c.wrappers = append(c.wrappers, fn)
}

func (c *chain) Apply(handler http.Handler) http.Handler {
	for _, wrap := range slices.Backward(c.wrappers) {
		handler = wrap(handler)
	}
	return handler
}
