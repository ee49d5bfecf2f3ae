package credential

import "context"

// Repository is the durable single-slot store for the bearer credential.
// An empty token means "no session". The session store is the only writer;
// the API transport reads the slot through this same interface.
type Repository interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
