package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/models"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/repositories/credential"
	"github.com/mahmut-akarsu/ECommerceProject/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

var dbSeq int

func setupCreds(t *testing.T) credential.Repository {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:sessionstore%d?mode=memory&cache=shared", dbSeq)
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return credential.NewSQLiteRepository(db)
}

func storedToken(t *testing.T, creds credential.Repository) string {
	t.Helper()
	tok, err := creds.Token(context.Background())
	require.NoError(t, err)
	return tok
}

// ---- fake API ----

type fakeAuthAPI struct {
	LoginTok string
	LoginErr error

	MeRet *models.Identity
	MeErr error

	RegisterRet *models.Identity
	RegisterErr error

	LoginCalls    int
	MeCalls       int
	RegisterCalls int

	LastLoginUser string
	LastLoginPass string
}

func (f *fakeAuthAPI) Login(ctx context.Context, username, password string) (string, error) {
	f.LoginCalls++
	f.LastLoginUser, f.LastLoginPass = username, password
	return f.LoginTok, f.LoginErr
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*models.Identity, error) {
	f.MeCalls++
	return f.MeRet, f.MeErr
}

func (f *fakeAuthAPI) Register(ctx context.Context, data models.RegisterData) (*models.Identity, error) {
	f.RegisterCalls++
	return f.RegisterRet, f.RegisterErr
}

func newStore(t *testing.T, api *fakeAuthAPI) (*Store, credential.Repository) {
	t.Helper()
	creds := setupCreds(t)
	return New(api, creds, logging.Discard()), creds
}

var alice = &models.Identity{ID: 1, Email: "a@b.com", IsActive: true}

// ---- TESTS ----

func TestInitialize_EmptySlot_Anonymous(t *testing.T) {
	api := &fakeAuthAPI{}
	s, _ := newStore(t, api)

	require.Equal(t, StateUninitialized, s.State())
	require.False(t, s.Ready())

	s.Initialize(context.Background())

	require.Equal(t, StateAnonymous, s.State())
	require.True(t, s.Ready())
	require.False(t, s.IsAuthenticated())
	require.Nil(t, s.Identity())
	require.Zero(t, api.MeCalls, "no token, no resolution round trip")
}

func TestInitialize_StoredToken_Authenticated(t *testing.T) {
	api := &fakeAuthAPI{MeRet: alice}
	s, creds := newStore(t, api)
	require.NoError(t, creds.Save(context.Background(), "stored-token"))

	var notified []*models.Identity
	s.OnIdentityChange(func(id *models.Identity) { notified = append(notified, id) })

	s.Initialize(context.Background())

	require.True(t, s.IsAuthenticated())
	require.Equal(t, alice, s.Identity())
	require.Len(t, notified, 1)
	require.Equal(t, alice, notified[0])
	require.Equal(t, "stored-token", storedToken(t, creds))
}

func TestInitialize_ExpiredToken_ClearsSlot(t *testing.T) {
	api := &fakeAuthAPI{MeErr: errors.New("401 token expired")}
	s, creds := newStore(t, api)
	require.NoError(t, creds.Save(context.Background(), "expired"))

	s.Initialize(context.Background())

	require.Equal(t, StateAnonymous, s.State())
	require.True(t, s.Ready(), "failure is absorbed, store still becomes ready")
	require.Empty(t, storedToken(t, creds))
}

func TestLogin_Success(t *testing.T) {
	api := &fakeAuthAPI{LoginTok: "fresh-token", MeRet: alice}
	s, creds := newStore(t, api)
	s.Initialize(context.Background())

	var notified []*models.Identity
	s.OnIdentityChange(func(id *models.Identity) { notified = append(notified, id) })

	id, err := s.Login(context.Background(), "a@b.com", "pw123456")
	require.NoError(t, err)
	require.Equal(t, alice, id)
	require.Equal(t, "a@b.com", api.LastLoginUser)
	require.Equal(t, "pw123456", api.LastLoginPass)

	require.True(t, s.IsAuthenticated())
	require.True(t, s.Ready())
	require.Equal(t, "fresh-token", storedToken(t, creds))
	require.Len(t, notified, 1)
}

func TestLogin_BadCredentials_Anonymous(t *testing.T) {
	api := &fakeAuthAPI{LoginErr: errors.New("invalid credentials")}
	s, creds := newStore(t, api)
	s.Initialize(context.Background())

	_, err := s.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	require.Equal(t, StateAnonymous, s.State())
	require.True(t, s.Ready())
	require.Empty(t, storedToken(t, creds))
	require.Zero(t, api.MeCalls, "identity resolution must not run after a failed login")
}

func TestLogin_IdentityResolutionFails_WipesTransientCredential(t *testing.T) {
	api := &fakeAuthAPI{LoginTok: "transient", MeErr: errors.New("boom")}
	s, creds := newStore(t, api)
	s.Initialize(context.Background())

	_, err := s.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	require.Equal(t, StateAnonymous, s.State())
	require.Empty(t, storedToken(t, creds), "step-two failure must not leave a stored credential")
	require.Nil(t, s.Identity())
}

func TestRegister_NoSessionSideEffects(t *testing.T) {
	created := &models.Identity{ID: 7, Email: "new@b.com", IsActive: true}
	api := &fakeAuthAPI{RegisterRet: created}
	s, creds := newStore(t, api)
	s.Initialize(context.Background())

	var notifications int
	s.OnIdentityChange(func(*models.Identity) { notifications++ })

	id, err := s.Register(context.Background(), models.RegisterData{Email: "new@b.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, created, id)

	require.Equal(t, StateAnonymous, s.State(), "register must not authenticate")
	require.True(t, s.Ready())
	require.Empty(t, storedToken(t, creds))
	require.Zero(t, notifications)
}

func TestRegister_Failure_RestoresState(t *testing.T) {
	api := &fakeAuthAPI{LoginTok: "tok", MeRet: alice, RegisterErr: errors.New("email already registered")}
	s, _ := newStore(t, api)
	s.Initialize(context.Background())
	_, err := s.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), models.RegisterData{Email: "a@b.com", Password: "pw"})
	require.Error(t, err)
	require.True(t, s.IsAuthenticated(), "failed register must not tear down the session")
	require.True(t, s.Ready())
}

func TestLogout_AlwaysLandsAnonymous_NoNetwork(t *testing.T) {
	api := &fakeAuthAPI{LoginTok: "tok", MeRet: alice}
	s, creds := newStore(t, api)
	s.Initialize(context.Background())
	_, err := s.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	loginCalls, meCalls := api.LoginCalls, api.MeCalls

	var notified []*models.Identity
	s.OnIdentityChange(func(id *models.Identity) { notified = append(notified, id) })

	s.Logout(context.Background())

	require.Equal(t, StateAnonymous, s.State())
	require.Nil(t, s.Identity())
	require.Empty(t, storedToken(t, creds))
	require.Equal(t, loginCalls, api.LoginCalls)
	require.Equal(t, meCalls, api.MeCalls)
	require.Len(t, notified, 1)
	require.Nil(t, notified[0])

	// callable again from anonymous without error or notification
	s.Logout(context.Background())
	require.Len(t, notified, 1)
}

func TestIsAuthenticated_ReflectsLastTerminalTransition(t *testing.T) {
	api := &fakeAuthAPI{LoginTok: "tok", MeRet: alice}
	s, _ := newStore(t, api)
	s.Initialize(context.Background())
	require.False(t, s.IsAuthenticated())

	_, err := s.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())

	s.Logout(context.Background())
	require.False(t, s.IsAuthenticated())

	// failed login after a successful one ends anonymous
	api.LoginErr = errors.New("nope")
	_, err = s.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	require.False(t, s.IsAuthenticated())
}

func TestTokenExpiry(t *testing.T) {
	api := &fakeAuthAPI{}
	s, creds := newStore(t, api)

	_, ok := s.TokenExpiry(context.Background())
	require.False(t, ok)

	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@b.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	require.NoError(t, creds.Save(context.Background(), tok))

	got, ok := s.TokenExpiry(context.Background())
	require.True(t, ok)
	require.True(t, got.Equal(exp))
}
