// Package session holds the authentication state of the client: the durable
// bearer credential and the identity resolved from it.
//
// The store is a small state machine:
//
//	Uninitialized → Resolving → {Authenticated, Anonymous}
//
// with Resolving re-entered during explicit login/register calls. Consumers
// that gate on the session (the cart store, the route guard) must wait for
// Ready() before deciding anything, and can subscribe to identity changes
// via OnIdentityChange.
package session
