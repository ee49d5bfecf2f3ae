package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/api"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/cart"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/config"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/guard"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/localdb"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/repositories/credential"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/session"
	"github.com/mahmut-akarsu/ECommerceProject/internal/logging"
)

// App wires the API client, the session and cart stores, and the REPL.
type App struct {
	config  *config.Config
	log     logging.Logger
	api     api.Client
	session *session.Store
	cart    *cart.Store
	db      *sql.DB
	reader  *bufio.Reader

	// returnTo remembers the view a login redirect came from, so a
	// successful login can take the user back there.
	returnTo string
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := localdb.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	creds := credential.NewSQLiteRepository(db)
	client := api.NewHTTPClient(c.APIBaseURL, creds, c.RequestTimeout)

	sessionStore := session.New(client, creds, log)
	cartStore := cart.New(client, sessionStore, log)
	// the cart reacts to identity transitions in the same tick they happen
	sessionStore.OnIdentityChange(cartStore.HandleIdentityChange)

	return &App{
		config:  c,
		log:     log,
		api:     client,
		session: sessionStore,
		cart:    cartStore,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run resolves the stored session (if any) and enters the REPL. Blocks
// until the user exits.
func (a *App) Run(ctx context.Context) {
	a.session.Initialize(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	id := a.session.Identity()
	return id != nil && id.IsSuperuser
}

func (a *App) getStatus() string {
	id := a.session.Identity()
	if id == nil {
		return "(anonymous)"
	}
	if id.IsSuperuser {
		return fmt.Sprintf("(%s, admin)", id.Email)
	}
	return fmt.Sprintf("(%s)", id.Email)
}

// admit runs the route guard for a view path. Denied navigations print the
// redirect the web client would perform; a login redirect also remembers
// the origin so the next successful login can return there.
func (a *App) admit(path string, adminOnly bool) bool {
	decision := guard.Evaluate(a.session, path, adminOnly)
	switch decision.Action {
	case guard.ActionAllow:
		return true
	case guard.ActionPending:
		printlnFn("Session still resolving, try again in a moment.")
		return false
	default:
		if decision.Target == guard.LoginPath {
			a.returnTo = decision.From
			printlnFn("Please login first.")
		} else {
			printlnFn("Redirected to", decision.Target)
		}
		return false
	}
}
