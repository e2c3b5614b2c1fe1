// Package server provides HTTP routing, middleware, and the conversion API handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Route patterns
// may carry a method prefix ("GET /api/convert"), which the mux enforces.
//
// # Conversion API
//
// ConvertHandler exposes GET /api/convert?url={link}. It parses the link, resolves
// the source record, and returns per-platform matches or search links as JSON.
// An unrecognized link is a 400; a conversion with zero matches is still a 200,
// since no match is a normal outcome.
//
// HealthHandler exposes GET /health for liveness checks.
//
// # Middleware
//
// RequestID stamps every request with a generated id, Logging emits one structured
// line per request, and RateLimit rejects excess traffic with 429 using a shared
// token bucket.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
