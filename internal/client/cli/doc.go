// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, the local session database, the API client, the
// session and cart stores, and an interactive REPL. Navigation to gated
// views (cart, orders, admin console) goes through the route guard: anonymous
// users are redirected to login (remembering where they came from) and
// non-superusers are silently sent back to the landing view.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
