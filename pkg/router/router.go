// Package router is a thin named-route layer over chi. Every route is
// registered with a name so it can be listed by `sudoku route:list` and
// reversed with URL.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo describes one mounted route. Method is "*" for Handle mounts.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux  chi.Router
	root *Group

	mu    sync.RWMutex
	named map[string]string
	table []RouteInfo
}

// Group shares a path prefix and middleware stack between routes.
type Group struct {
	router *Router
	prefix string
	stack  []Middleware
}

func New() *Router {
	r := &Router{mux: chi.NewRouter(), named: make(map[string]string)}
	r.root = &Group{router: r, prefix: "/"}
	return r
}

func (r *Router) Handler() http.Handler { return r.mux }

// Use adds global middleware. It must be called before any route is added.
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

func (r *Router) Group(prefix string, mws ...Middleware) *Group {
	return r.root.Group(prefix, mws...)
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.root.Get(path, name, h, mws...)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.root.Post(path, name, h, mws...)
}

// Handle mounts h for every method on path, e.g. /metrics or /graphql.
func (r *Router) Handle(path, name string, h http.Handler) {
	r.root.Handle(path, name, h)
}

// Path returns the pattern registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.named[name]
	return p, ok
}

// URL reverses a named route, filling its {param} placeholders.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	p, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("router: no route named %q", name)
	}
	for k, v := range params {
		p = strings.ReplaceAll(p, "{"+k+"}", v)
	}
	if strings.ContainsRune(p, '{') {
		return "", fmt.Errorf("router: route %q needs more parameters: %s", name, p)
	}
	return p, nil
}

// Routes lists every mounted route ordered by path, then method.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	out := make([]RouteInfo, len(r.table))
	copy(out, r.table)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Method < out[j].Method
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Param returns a path parameter of the matched route.
func Param(req *http.Request, key string) string {
	return chi.URLParam(req, key)
}

func (r *Router) register(info RouteInfo, h http.Handler) {
	if info.Method == "*" {
		r.mux.Handle(info.Path, h)
	} else {
		r.mux.Method(info.Method, info.Path, h)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.table = append(r.table, info)
	if info.Name != "" {
		r.named[info.Name] = info.Path
	}
}

// Group nests a sub-group under g; its middleware runs after g's.
func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		router: g.router,
		prefix: join(g.prefix, prefix),
		stack:  g.with(mws),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.add(http.MethodGet, path, name, h, mws)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.add(http.MethodPost, path, name, h, mws)
}

func (g *Group) Handle(path, name string, h http.Handler) {
	g.add("*", path, name, h, nil)
}

func (g *Group) add(method, path, name string, h http.Handler, mws []Middleware) {
	stack := g.with(mws)
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	g.router.register(RouteInfo{Method: method, Path: join(g.prefix, path), Name: name}, h)
}

func (g *Group) with(mws []Middleware) []Middleware {
	out := make([]Middleware, 0, len(g.stack)+len(mws))
	return append(append(out, g.stack...), mws...)
}

// join cleans and concatenates path pieces: join("/api/", "cells") is
// "/api/cells" and join() is "/".
func join(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		for _, seg := range strings.Split(part, "/") {
			if seg != "" {
				b.WriteByte('/')
				b.WriteString(seg)
			}
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
