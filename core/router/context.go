package router

import (
	"encoding/json"
	"mime/multipart"
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks `binding` struct tags on bound request payloads.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// ResponseWriter wraps http.ResponseWriter and records the status code
// for request logging.
type ResponseWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader records the status before delegating.
func (w *ResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Status returns the status code written so far (200 if none).
func (w *ResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Context carries per-request state through middleware and handlers.
type Context struct {
	Request *http.Request
	Writer  *ResponseWriter

	params map[string]string
	values map[string]any
}

func newContext(w http.ResponseWriter, req *http.Request, params map[string]string) *Context {
	return &Context{
		Request: req,
		Writer:  &ResponseWriter{ResponseWriter: w},
		params:  params,
	}
}

// JSON writes obj as a JSON response with the given status code.
func (c *Context) JSON(status int, obj any) error {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Writer.WriteHeader(status)
	return json.NewEncoder(c.Writer).Encode(obj)
}

// Status writes a bare status code.
func (c *Context) Status(status int) {
	c.Writer.WriteHeader(status)
}

// Redirect sends an HTTP redirect to location.
func (c *Context) Redirect(status int, location string) error {
	http.Redirect(c.Writer, c.Request, location, status)
	return nil
}

// Param returns a path parameter by name.
func (c *Context) Param(key string) string {
	return c.params[key]
}

// Query returns a URL query parameter by name.
func (c *Context) Query(key string) string {
	return c.Request.URL.Query().Get(key)
}

// DefaultQuery returns the query parameter or fallback when absent.
func (c *Context) DefaultQuery(key, fallback string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return fallback
}

// ShouldBindJSON decodes the request body into obj and validates its
// `binding` tags.
func (c *Context) ShouldBindJSON(obj any) error {
	if err := json.NewDecoder(c.Request.Body).Decode(obj); err != nil {
		return err
	}
	return validate.Struct(obj)
}

// ShouldBind is an alias of ShouldBindJSON for JSON APIs.
func (c *Context) ShouldBind(obj any) error {
	return c.ShouldBindJSON(obj)
}

// FormFile returns the uploaded file for the given form field.
func (c *Context) FormFile(name string) (*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return nil, err
	}
	_, header, err := c.Request.FormFile(name)
	return header, err
}

// Set stores a request-scoped value (used by middleware).
func (c *Context) Set(key string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = value
}

// Get retrieves a request-scoped value.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetUint returns a request-scoped value as uint (0 when absent).
func (c *Context) GetUint(key string) uint {
	if v, ok := c.values[key]; ok {
		switch n := v.(type) {
		case uint:
			return n
		case int:
			return uint(n)
		case float64:
			return uint(n)
		}
	}
	return 0
}

// GetString returns a request-scoped value as string ("" when absent).
func (c *Context) GetString(key string) string {
	if v, ok := c.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ClientIP returns the caller address, honoring X-Forwarded-For.
func (c *Context) ClientIP() string {
	if fwd := c.Request.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
