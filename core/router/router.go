package router

import (
	"net/http"
	"strings"
)

// HandlerFunc is the signature of all route handlers.
type HandlerFunc func(*Context) error

// MiddlewareFunc wraps a handler with pre/post behavior.
type MiddlewareFunc func(HandlerFunc) HandlerFunc

type route struct {
	method   string
	segments []string
	handler  HandlerFunc
}

// Router is a small net/http router with path parameters, groups and a
// middleware chain. Handlers return an error so controllers can use early
// returns; the error itself is considered handled (controllers write the
// response) and is only used to short-circuit middleware.
type Router struct {
	routes     []route
	middleware []MiddlewareFunc
	notFound   HandlerFunc
	statics    map[string]string
}

// New creates an empty Router.
func New() *Router {
	return &Router{
		statics: make(map[string]string),
	}
}

// Use appends a middleware to the global chain.
func (r *Router) Use(mw MiddlewareFunc) {
	r.middleware = append(r.middleware, mw)
}

// Handle registers a handler for the method and path. Path segments may be
// parameters (":id") or a trailing wildcard ("*filepath").
func (r *Router) Handle(method, path string, handler HandlerFunc) {
	r.routes = append(r.routes, route{
		method:   method,
		segments: splitPath(path),
		handler:  handler,
	})
}

func (r *Router) GET(path string, handler HandlerFunc)    { r.Handle(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc)   { r.Handle(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)    { r.Handle(http.MethodPut, path, handler) }
func (r *Router) PATCH(path string, handler HandlerFunc)  { r.Handle(http.MethodPatch, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) { r.Handle(http.MethodDelete, path, handler) }

// Group creates a RouterGroup rooted at prefix.
func (r *Router) Group(prefix string) *RouterGroup {
	return &RouterGroup{
		router: r,
		prefix: strings.TrimSuffix(prefix, "/"),
	}
}

// Static serves files under dir at the given URL prefix.
func (r *Router) Static(prefix, dir string) {
	r.statics[strings.TrimSuffix(prefix, "/")] = dir
}

// NotFound sets the handler invoked when no route matches.
func (r *Router) NotFound(handler HandlerFunc) {
	r.notFound = handler
}

// Run starts an HTTP server on addr (e.g. ":8100").
func (r *Router) Run(addr string) error {
	return http.ListenAndServe(addr, r)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Static prefixes first
	for prefix, dir := range r.statics {
		if strings.HasPrefix(req.URL.Path, prefix+"/") {
			fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
			fs.ServeHTTP(w, req)
			return
		}
	}

	segments := splitPath(req.URL.Path)

	for _, rt := range r.routes {
		if rt.method != req.Method {
			continue
		}
		params, ok := matchRoute(rt.segments, segments)
		if !ok {
			continue
		}
		r.dispatch(w, req, rt.handler, params)
		return
	}

	if r.notFound != nil {
		r.dispatch(w, req, r.notFound, nil)
		return
	}
	http.NotFound(w, req)
}

func (r *Router) dispatch(w http.ResponseWriter, req *http.Request, handler HandlerFunc, params map[string]string) {
	ctx := newContext(w, req, params)

	final := handler
	for i := len(r.middleware) - 1; i >= 0; i-- {
		final = r.middleware[i](final)
	}

	// Handler errors are already rendered into the response by controllers.
	_ = final(ctx)
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func matchRoute(pattern, actual []string) (map[string]string, bool) {
	var params map[string]string

	for i, seg := range pattern {
		if strings.HasPrefix(seg, "*") {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = "/" + strings.Join(actual[i:], "/")
			return params, true
		}
		if i >= len(actual) {
			return nil, false
		}
		if strings.HasPrefix(seg, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = actual[i]
			continue
		}
		if seg != actual[i] {
			return nil, false
		}
	}

	if len(actual) != len(pattern) {
		return nil, false
	}
	return params, true
}
