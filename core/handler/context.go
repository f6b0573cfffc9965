package handler

import (
	"context"
	"net/http"
	"time"
)

// Context defines the contract for request contexts.
// Use NewContext for the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}

// BaseContext is the default Context implementation. It delegates to the request's
// context and keeps path parameters in a lazily created map.
type BaseContext struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
}

// NewContext wraps a response writer and request.
func NewContext(w http.ResponseWriter, r *http.Request) *BaseContext {
	return &BaseContext{w: w, r: r}
}

func (c *BaseContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *BaseContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *BaseContext) Err() error                  { return c.r.Context().Err() }
func (c *BaseContext) Value(key any) any           { return c.r.Context().Value(key) }

// Request returns the current request, including values stored with SetValue.
func (c *BaseContext) Request() *http.Request { return c.r }

func (c *BaseContext) ResponseWriter() http.ResponseWriter { return c.w }

// Param returns the path parameter for key, or an empty string.
func (c *BaseContext) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// SetParam stores a path parameter. Routers call it after matching a pattern.
func (c *BaseContext) SetParam(key, value string) {
	if c.params == nil {
		c.params = make(map[string]string)
	}
	c.params[key] = value
}

// SetValue stores a request-scoped value, replacing the request with one that
// carries the derived context.
func (c *BaseContext) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}
