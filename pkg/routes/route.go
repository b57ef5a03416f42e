// Package routes declares HTTP routes as data and registers them on a
// ServeMux using method-qualified patterns.
package routes

import "net/http"

// Route binds a method and a pattern relative to its group to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}
