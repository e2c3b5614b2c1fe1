// package server contains middleware & handlers for the track conversion web service
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, request ids, CORS, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the conversion service.
// Implementations handle specific endpoints (conversion, health).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// New assembles the service router: request id, logging, and rate limit
// middleware around the conversion and health handlers. rps <= 0 disables
// rate limiting.
func New(converter Converter, logger *log.Logger, rps float64) *BasicRouter {
	router := NewBasicRouter()
	router.Use(RequestID(), Logging(logger))
	if rps > 0 {
		router.Use(RateLimit(rate.NewLimiter(rate.Limit(rps), int(rps)+1)))
	}

	router.Handler(NewConvertHandler(converter, logger))
	router.Handler(NewHealthHandler())
	return router
}
