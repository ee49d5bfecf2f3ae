package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/models"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/repositories/credential"
	"github.com/mahmut-akarsu/ECommerceProject/internal/logging"
)

// State of the session machine.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateResolving     State = "resolving"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// AuthAPI is the slice of the remote surface the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (*models.Identity, error)
	Register(ctx context.Context, data models.RegisterData) (*models.Identity, error)
}

// Listener is called synchronously whenever the resolved identity changes:
// nil on present→absent, the new identity on absent→present or when a
// different user logs in over an existing session.
type Listener func(identity *models.Identity)

// Store owns the credential lifecycle and the resolved identity.
//
// Invariants it maintains:
//   - identity present ⇒ a credential is stored in the durable slot;
//   - ready is false only during Initialize or an in-flight login/register;
//   - the durable slot is written nowhere else in the process.
type Store struct {
	api   AuthAPI
	creds credential.Repository
	log   logging.Logger

	mu        sync.Mutex
	state     State
	identity  *models.Identity
	ready     bool
	listeners []Listener
}

func New(api AuthAPI, creds credential.Repository, log logging.Logger) *Store {
	return &Store{api: api, creds: creds, log: log, state: StateUninitialized}
}

// OnIdentityChange registers a listener. Listeners run synchronously inside
// the transition that changed the identity, before the triggering operation
// returns, so dependent state (the cart) can never be observed stale against
// the session.
func (s *Store) OnIdentityChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Identity returns the resolved user, or nil. Callers must treat the value
// as read-only.
func (s *Store) Identity() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated
}

// Initialize runs the startup resolution pass: if a credential is stored,
// resolve the identity; on any failure discard the credential and start
// anonymous. This is the one place a network failure is absorbed rather
// than propagated — there is no caller to notify at startup. Always leaves
// ready=true.
func (s *Store) Initialize(ctx context.Context) {
	s.beginResolving()

	tok, err := s.creds.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored credential, starting anonymous", "error", err)
		s.setSession(StateAnonymous, nil)
		return
	}
	if tok == "" {
		s.setSession(StateAnonymous, nil)
		return
	}

	id, err := s.api.Me(ctx)
	if err != nil {
		s.log.Warn(ctx, "stored credential rejected, starting anonymous", "error", err)
		s.clearCredential(ctx)
		s.setSession(StateAnonymous, nil)
		return
	}

	s.log.Info(ctx, "session restored", "user", id.Email)
	s.setSession(StateAuthenticated, id)
}

// Login obtains a credential, persists it, then resolves the identity with a
// second round trip (the login endpoint alone does not yield a profile).
// On failure at any step the durable slot is cleared, the state lands
// Anonymous, and the error is propagated.
func (s *Store) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	s.beginResolving()

	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.clearCredential(ctx)
		s.setSession(StateAnonymous, nil)
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.creds.Save(ctx, token); err != nil {
		s.clearCredential(ctx)
		s.setSession(StateAnonymous, nil)
		return nil, fmt.Errorf("persist credential: %w", err)
	}

	id, err := s.api.Me(ctx)
	if err != nil {
		// The credential was transiently stored; wipe it so the
		// "identity present ⇔ credential stored" invariant holds.
		s.clearCredential(ctx)
		s.setSession(StateAnonymous, nil)
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	s.log.Info(ctx, "login successful", "user", id.Email)
	s.setSession(StateAuthenticated, id)
	return id, nil
}

// Register creates an account and returns the created identity for display.
// It establishes no session: no credential is stored and the state returns
// to what it was before the call. Callers are expected to Login separately.
func (s *Store) Register(ctx context.Context, data models.RegisterData) (*models.Identity, error) {
	s.mu.Lock()
	prevState, prevReady := s.state, s.ready
	s.state, s.ready = StateResolving, false
	s.mu.Unlock()

	id, err := s.api.Register(ctx, data)

	s.mu.Lock()
	s.state, s.ready = prevState, prevReady
	s.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return id, nil
}

// Logout clears the durable credential and transitions to Anonymous. It is
// local-only, never touches the network, and is callable from any state.
// A storage failure is logged and absorbed so the visible transition always
// completes.
func (s *Store) Logout(ctx context.Context) {
	s.clearCredential(ctx)
	s.setSession(StateAnonymous, nil)
}

// TokenExpiry decodes the stored access token without verifying it and
// reports its expiry claim, for display only. Verification is the server's
// job.
func (s *Store) TokenExpiry(ctx context.Context) (time.Time, bool) {
	tok, err := s.creds.Token(ctx)
	if err != nil || tok == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) beginResolving() {
	s.mu.Lock()
	s.state, s.ready = StateResolving, false
	s.mu.Unlock()
}

func (s *Store) clearCredential(ctx context.Context) {
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear stored credential", "error", err)
	}
}

// setSession commits a terminal transition and, if the identity actually
// changed, notifies listeners synchronously before returning.
func (s *Store) setSession(state State, id *models.Identity) {
	s.mu.Lock()
	prev := s.identity
	s.state, s.identity, s.ready = state, id, true
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if !identityChanged(prev, id) {
		return
	}
	for _, l := range listeners {
		l(id)
	}
}

func identityChanged(prev, next *models.Identity) bool {
	if (prev == nil) != (next == nil) {
		return true
	}
	return prev != nil && next != nil && prev.ID != next.ID
}
