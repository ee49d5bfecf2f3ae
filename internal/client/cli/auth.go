package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/api"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getOptionalText = GetOptionalText
var getPassword = GetPassword

// Register prompts for account details and creates the account. Creating an
// account does not sign the user in; a separate login is expected.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getOptionalText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	id, err := a.session.Register(ctx, models.RegisterData{
		Email:    email,
		FullName: fullName,
		Password: string(password),
	})
	if err != nil {
		printlnFn("Registration failed:", api.Message(err))
		return err
	}

	printlnFn(fmt.Sprintf("Account created for %s. You can now login.", id.Email))
	return nil
}

// Login prompts for credentials and authenticates. On success the cart is
// already synchronized (the session store notifies the cart store during
// the transition), and the user is returned to the view that triggered the
// login redirect, if any.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	id, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed:", api.Message(err))
		return err
	}

	printlnFn("Logged in as", id.Email)

	if a.returnTo != "" {
		back := a.returnTo
		a.returnTo = ""
		printlnFn("Returning to", back)
		a.reopen(ctx, back)
	}
	return nil
}

// reopen re-renders the view a login redirect interrupted.
func (a *App) reopen(ctx context.Context, path string) {
	switch path {
	case "/cart":
		_ = a.ShowCart(ctx)
	case "/orders":
		_ = a.Orders(ctx)
	}
}

// Logout tears the session down locally: credential slot cleared, identity
// dropped, cart snapshot discarded in the same transition. No network calls.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Status shows the resolved identity and, when the access token carries an
// expiry claim, when the session will lapse.
func (a *App) Status(ctx context.Context) error {
	id := a.session.Identity()
	if id == nil {
		printlnFn("Not logged in.")
		return nil
	}
	name := id.FullName
	if name == "" {
		name = id.Email
	}
	role := "customer"
	if id.IsSuperuser {
		role = "admin"
	}
	printlnFn(fmt.Sprintf("Logged in as %s <%s> (%s)", name, id.Email, role))
	if exp, ok := a.session.TokenExpiry(ctx); ok {
		printlnFn("Session expires at", exp.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
