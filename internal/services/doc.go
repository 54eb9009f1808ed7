// Package services contains the HTTP clients for the remote systems cinecli talks to.
//
// # Ticketing API
//
// [Service] is the interface over the cinema ticketing REST API; [CinemaService]
// is its [net/http] implementation. Every operation takes a [context.Context]
// and returns normalized errors: non-2xx responses become an [*APIError]
// carrying the HTTP status and the backend's message field, so callers can
// distinguish seat conflicts ([APIError.IsConflict]) from other failures
// without parsing strings.
//
// Outbound requests pass through a [rate.Limiter] so bulk catalog commands
// cannot hammer the backend.
//
// # Geolocation
//
// [Locator] resolves the user's position through an HTTP lookup with a fixed
// 5 second budget. Each failure cause maps to its own sentinel error
// (denied, unavailable, timeout) so the UI can surface a distinct message per
// cause, mirroring browser geolocation error codes.
package services
