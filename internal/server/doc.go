// Package server provides HTTP routing, middleware, and the payment-gateway
// return handler for the CLI.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Payment Return Handler
//
// [PaymentHandler] implements the gateway's browser-return leg. After the
// CLI opens the external payment page the gateway redirects the browser to
// localhost with the transaction outcome in the query string. The handler
// captures the full parameter set untouched and hands it to the waiting
// flow through a channel; verification of those parameters is the backend's
// job, not ours.
//
// It only processes one return to prevent replay.
//
// # Current Usage
//
// During checkout a temporary HTTP server starts on localhost, serves the
// single gateway return, and shuts down once the parameters are delivered.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
