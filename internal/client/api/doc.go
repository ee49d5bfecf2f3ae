// Package api implements the HTTP client for the storefront backend.
//
// HTTPClient covers the whole consumed surface: auth, catalog, cart, and
// order endpoints. Authenticated calls go through a single request hook
// (an http.RoundTripper) that attaches the bearer credential supplied by a
// TokenSource, so no call site handles the token itself. Failures are
// classified into sentinel errors (ErrUnauthorized, ErrValidation, ...)
// wrapped in APIError, which preserves the server's detail message for
// display.
package api
