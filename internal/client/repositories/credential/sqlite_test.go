package credential

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM credentials`)
	require.NoError(t, err)
	return db
}

func TestToken_EmptySlot(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	tok, err := repo.Token(context.Background())
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSaveAndToken(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok-1"))
	tok, err := repo.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	// overwrite keeps a single slot
	require.NoError(t, repo.Save(ctx, "tok-2"))
	tok, err = repo.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
}

func TestClear(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok"))
	require.NoError(t, repo.Clear(ctx))

	tok, err := repo.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	// clearing an empty slot is not an error
	require.NoError(t, repo.Clear(ctx))
}
