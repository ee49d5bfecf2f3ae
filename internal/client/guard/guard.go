// Package guard decides whether a navigation target may be rendered for the
// current session state. It is a pure function over the session snapshot —
// it performs no I/O and never mutates anything.
package guard

import "github.com/mahmut-akarsu/ECommerceProject/internal/client/models"

// Well-known view paths used as redirect targets.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Action is the guard's verdict.
type Action int

const (
	// ActionPending means the session is still resolving; render a
	// loading indicator and re-evaluate later. No admit/deny decision
	// may be made yet.
	ActionPending Action = iota
	// ActionAllow admits the navigation.
	ActionAllow
	// ActionRedirect denies the navigation and names a target instead.
	ActionRedirect
)

// Decision is the outcome of evaluating one navigation request.
type Decision struct {
	Action Action
	// Target is the redirect destination when Action is ActionRedirect.
	Target string
	// From remembers the originally requested path so a post-login flow
	// can return to it. Set only for login redirects.
	From string
}

// Session is the read-only slice of the session store the guard consumes.
type Session interface {
	Ready() bool
	Identity() *models.Identity
}

// Evaluate gates navigation to path. adminOnly additionally requires the
// superuser flag; a non-superuser is silently sent to the landing view, not
// an error page.
func Evaluate(s Session, path string, adminOnly bool) Decision {
	if !s.Ready() {
		return Decision{Action: ActionPending}
	}

	id := s.Identity()
	if id == nil {
		return Decision{Action: ActionRedirect, Target: LoginPath, From: path}
	}

	if adminOnly && !id.IsSuperuser {
		return Decision{Action: ActionRedirect, Target: HomePath}
	}

	return Decision{Action: ActionAllow}
}
