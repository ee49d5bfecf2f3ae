package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/api"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/models"
	"github.com/mahmut-akarsu/ECommerceProject/internal/logging"
)

// API is the slice of the remote surface the cart store needs. Every
// mutation returns the complete post-mutation snapshot.
type API interface {
	GetCart(ctx context.Context) (*models.CartSnapshot, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) (*models.CartSnapshot, error)
	UpdateCartItem(ctx context.Context, lineID int64, quantity int) (*models.CartSnapshot, error)
	RemoveCartItem(ctx context.Context, lineID int64) (*models.CartSnapshot, error)
	ClearCart(ctx context.Context) (*models.CartSnapshot, error)
}

// Session is the read-only view of the session store the cart gates on.
type Session interface {
	Identity() *models.Identity
}

// Store mirrors the server-side cart of the current identity.
//
// The consistency discipline is echo-only: the local snapshot is always a
// verbatim copy of the most recent server response, never a locally patched
// one. Totals and line subtotals are therefore always server-computed.
//
// Concurrent operations are not serialized; whichever response lands last
// owns the snapshot. Callers needing strict ordering await each call before
// issuing the next. A generation counter guards against a different hazard:
// a response from a previous identity (e.g. a fetch still in flight when the
// user logs out) is discarded instead of resurrecting the old cart.
type Store struct {
	api     API
	session Session
	log     logging.Logger

	mu       sync.Mutex
	snapshot *models.CartSnapshot
	loading  bool
	lastErr  string
	gen      uint64
}

func New(api API, session Session, log logging.Logger) *Store {
	return &Store{api: api, session: session, log: log}
}

// Snapshot returns the last server-echoed cart, or nil when no session is
// active or nothing was fetched yet. Read-only for callers.
func (s *Store) Snapshot() *models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the display message recorded by the most recent failed
// operation, or "".
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// HandleIdentityChange is the session-store listener. It runs synchronously
// inside the session transition: on identity loss the snapshot is dropped
// locally (the server cart stays for later reuse); on identity gain the cart
// is re-fetched for the new user. A failed auto-fetch is recorded in
// LastError and logged, not propagated — there is no caller to notify.
func (s *Store) HandleIdentityChange(id *models.Identity) {
	s.ClearLocal()
	if id == nil {
		return
	}
	ctx := context.Background()
	if _, err := s.Fetch(ctx); err != nil {
		s.log.Warn(ctx, "cart auto-fetch failed", "user", id.Email, "error", err)
	}
}

// Fetch loads the current cart. Without an identity it is a no-op: the
// snapshot stays absent and no error is recorded.
func (s *Store) Fetch(ctx context.Context) (*models.CartSnapshot, error) {
	if s.session.Identity() == nil {
		return nil, nil
	}
	gen := s.begin()
	snap, err := s.api.GetCart(ctx)
	return s.finish(gen, snap, err)
}

// AddItem puts quantity units of a product into the cart. Quantity must be
// a positive integer; stock sufficiency is the server's call and its
// rejection is surfaced verbatim. Without an identity this is a no-op.
func (s *Store) AddItem(ctx context.Context, productID int64, quantity int) (*models.CartSnapshot, error) {
	if s.session.Identity() == nil {
		return nil, nil
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", api.ErrValidation)
	}
	gen := s.begin()
	snap, err := s.api.AddCartItem(ctx, productID, quantity)
	return s.finish(gen, snap, err)
}

// UpdateQuantity changes the quantity of an existing line.
//
// Caller contract: a target quantity below 1 must be translated into
// RemoveItem by the caller. The store does not correct it — the value is
// forwarded and whatever the server returns (result or rejection) is
// surfaced verbatim.
func (s *Store) UpdateQuantity(ctx context.Context, lineID int64, quantity int) (*models.CartSnapshot, error) {
	if s.session.Identity() == nil {
		return nil, nil
	}
	gen := s.begin()
	snap, err := s.api.UpdateCartItem(ctx, lineID, quantity)
	return s.finish(gen, snap, err)
}

// RemoveItem deletes a line from the cart.
func (s *Store) RemoveItem(ctx context.Context, lineID int64) (*models.CartSnapshot, error) {
	if s.session.Identity() == nil {
		return nil, nil
	}
	gen := s.begin()
	snap, err := s.api.RemoveCartItem(ctx, lineID)
	return s.finish(gen, snap, err)
}

// ClearRemote empties the cart on the server and replaces the snapshot with
// the (expected empty) result.
func (s *Store) ClearRemote(ctx context.Context) (*models.CartSnapshot, error) {
	if s.session.Identity() == nil {
		return nil, nil
	}
	gen := s.begin()
	snap, err := s.api.ClearCart(ctx)
	return s.finish(gen, snap, err)
}

// ClearLocal drops the snapshot without any network call (used on logout)
// and invalidates all in-flight operations.
func (s *Store) ClearLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.loading = false
	s.lastErr = ""
	s.gen++
}

func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastErr = ""
	return s.gen
}

// finish commits a response. Responses begun under an older generation are
// dropped entirely: they belong to an identity that is gone, so neither the
// snapshot nor lastErr may see them.
func (s *Store) finish(gen uint64, snap *models.CartSnapshot, err error) (*models.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil, nil
	}
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return nil, err
	}
	s.snapshot = snap
	return snap, nil
}
