package routes

import "net/http"

// Route binds a method and path pattern to a handler. An empty Method
// matches every method.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// MuxPattern is the ServeMux pattern for the route mounted under prefix,
// for example "GET /listings/{id}".
func (r Route) MuxPattern(prefix string) string {
	if r.Method == "" {
		return prefix + r.Pattern
	}
	return r.Method + " " + prefix + r.Pattern
}
