package router

import (
	"net/http"
	"strings"
)

// RouterGroup registers routes under a shared prefix with its own
// middleware chain.
type RouterGroup struct {
	router     *Router
	prefix     string
	middleware []MiddlewareFunc
}

// Group creates a child group with an extended prefix, inheriting the
// parent's middleware.
func (g *RouterGroup) Group(prefix string) *RouterGroup {
	child := &RouterGroup{
		router: g.router,
		prefix: g.prefix + strings.TrimSuffix(prefix, "/"),
	}
	child.middleware = append(child.middleware, g.middleware...)
	return child
}

// Use appends a middleware applied to routes registered on this group
// after the call.
func (g *RouterGroup) Use(mw MiddlewareFunc) {
	g.middleware = append(g.middleware, mw)
}

func (g *RouterGroup) handle(method, path string, handler HandlerFunc) {
	final := handler
	for i := len(g.middleware) - 1; i >= 0; i-- {
		final = g.middleware[i](final)
	}
	g.router.Handle(method, g.prefix+path, final)
}

func (g *RouterGroup) GET(path string, handler HandlerFunc) {
	g.handle(http.MethodGet, path, handler)
}

func (g *RouterGroup) POST(path string, handler HandlerFunc) {
	g.handle(http.MethodPost, path, handler)
}

func (g *RouterGroup) PUT(path string, handler HandlerFunc) {
	g.handle(http.MethodPut, path, handler)
}

func (g *RouterGroup) PATCH(path string, handler HandlerFunc) {
	g.handle(http.MethodPatch, path, handler)
}

func (g *RouterGroup) DELETE(path string, handler HandlerFunc) {
	g.handle(http.MethodDelete, path, handler)
}
