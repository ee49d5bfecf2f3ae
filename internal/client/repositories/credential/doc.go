// Package credential persists the session's bearer token in the local
// client database so the session survives process restarts.
package credential
