// Package models defines the wire-level data structures exchanged with the
// storefront API. All of them are server-owned: the client decodes and
// displays them but never derives or recomputes their fields locally.
package models

// Identity is the resolved user profile tied to the current credential.
// It is only ever constructed from an API response.
type Identity struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// RegisterData is the payload for account creation.
type RegisterData struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
}

// AuthResponse is returned by the login endpoint. The access token is an
// opaque bearer credential; the client does not interpret it.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
