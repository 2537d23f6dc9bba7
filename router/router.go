// Package router implements the URI-pattern dispatch table: an ordered
// list of (pattern, handler) entries, matched in registration order
// against the handshake's request path.
package router

import (
	"net/url"
	"strings"

	"github.com/curatorsigma/blazing-agi/handler"
	"github.com/curatorsigma/blazing-agi/layer"
)

type route struct {
	segments []string
	base     handler.Handler
	layers   []layer.Layer
	handler  handler.Handler
}

// Router holds the ordered route table and the fallback handler invoked
// when no entry matches. It is built once at startup and then only
// read, which lets it be shared across every connection goroutine
// without synchronization.
type Router struct {
	routes   []route
	fallback handler.Handler
}

// New creates an empty router. Its fallback responds to any
// unmatched request with a best-effort VERBOSE before the connection
// is closed.
func New() *Router {
	return &Router{
		fallback: handler.Fallback,
	}
}

// Route registers pattern -> h. pattern must start with "/". Segments
// are literal or ":name"; there is no trailing catch-all. Routes are
// matched in the order they were added, and the first match wins even
// if a later route would also match.
func (r *Router) Route(pattern string, h handler.Handler) *Router {
	if pattern == "" {
		panic("router: pattern must not be empty")
	}
	if !strings.HasPrefix(pattern, "/") {
		panic("router: pattern must start with '/'")
	}
	r.routes = append(r.routes, route{
		segments: splitPath(pattern),
		base:     h,
		handler:  h,
	})
	return r
}

// Fallback sets the handler invoked when no route matches.
func (r *Router) Fallback(h handler.Handler) *Router {
	r.fallback = h
	return r
}

// Merge appends other's routes after r's own. r's fallback is kept;
// other's fallback is discarded.
func (r *Router) Merge(other *Router) *Router {
	r.routes = append(r.routes, other.routes...)
	return r
}

// Layer wraps every route currently registered (not the fallback) with
// l. Calling Layer more than once composes outer-first in call order:
// r.Layer(L1).Layer(L2) yields L1(L2(H)) for each H. Routes added after
// a given Layer call are unaffected by it.
func (r *Router) Layer(l layer.Layer) *Router {
	for i := range r.routes {
		rt := &r.routes[i]
		rt.layers = append(rt.layers, l)
		rt.handler = layer.Chain(rt.layers...)(rt.base)
	}
	return r
}

// Lookup finds the handler registered for u's path, plus any :name
// bindings captured along the way. ok is false only when no route
// matched at all; the fallback is never returned by Lookup, only by
// LookupOrFallback, which Serve uses.
func (r *Router) Lookup(u *url.URL) (handler.Handler, map[string]string, bool) {
	segments := splitPath(u.Path)
	for _, rt := range r.routes {
		if captures, ok := match(rt.segments, segments); ok {
			return rt.handler, captures, true
		}
	}
	return nil, nil, false
}

// LookupOrFallback is Lookup, substituting the router's fallback
// handler (with an empty capture set) on a miss.
func (r *Router) LookupOrFallback(u *url.URL) (handler.Handler, map[string]string) {
	if h, captures, ok := r.Lookup(u); ok {
		return h, captures
	}
	return r.fallback, map[string]string{}
}

func splitPath(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// match attempts to unify pattern against path. Segment counts must be
// equal; literal segments must match byte-for-byte; ":name" segments
// match any single segment and bind name -> that segment's value.
func match(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	var captures map[string]string
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			if captures == nil {
				captures = make(map[string]string, len(pattern))
			}
			captures[seg[1:]] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	if captures == nil {
		captures = map[string]string{}
	}
	return captures, true
}
