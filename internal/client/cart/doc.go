// Package cart keeps a local mirror of the server-owned shopping cart.
//
// The mirror exists only while the session store holds an identity: it is
// fetched when an identity appears, dropped locally when it disappears, and
// every mutation replaces the whole snapshot with the server's response.
package cart
