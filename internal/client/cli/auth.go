package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vocabday/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignUp prompts for email, name and password and creates a new account.
// The password byte slice is wiped before returning.
func (a *App) SignUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! Your first test is waiting (type 'tests').\n", s.Name)
	return nil
}

// SignIn prompts for credentials and stores the resulting session.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", s.Name, s.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// WhoAmI asks the server for the current account.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.study.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "#%d %s <%s>\n", u.ID, u.Name, u.Email)
	return nil
}
