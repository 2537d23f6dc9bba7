// Package layer implements the decorator model that wraps a Handler
// with cross-cutting behavior (authentication, logging) without the
// handler itself knowing about it.
package layer

import "github.com/curatorsigma/blazing-agi/handler"

// Layer transforms a Handler into another Handler. Router.Layer applies
// these outer-first: Layer(L1).Layer(L2) on a registered handler H
// yields L1(L2(H)).
type Layer func(handler.Handler) handler.Handler

// Chain composes several layers into one, applying them in the same
// outer-first order Router.Layer would if called once per element.
// Router.Layer already models one composition step; Chain exists for
// call sites that want to build a slice of layers up front instead of
// calling .Layer() repeatedly.
func Chain(layers ...Layer) Layer {
	return func(h handler.Handler) handler.Handler {
		for i := len(layers) - 1; i >= 0; i-- {
			h = layers[i](h)
		}
		return h
	}
}

// AndThenBefore returns a Layer that runs before ahead of whatever
// handler it wraps, succeeding only if ahead does.
func AndThenBefore(ahead handler.Handler) Layer {
	return func(h handler.Handler) handler.Handler {
		return handler.AndThen{First: ahead, Second: h}
	}
}
