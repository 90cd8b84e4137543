package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pokodex/internal/client/services"
	"github.com/dmitrijs2005/pokodex/internal/common"
)

// getSimpleText and getPassword are indirections for tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errPasswordMismatch = errors.New("passwords do not match")

func (a *App) readCredentials(confirm bool) (string, string, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", "", err
	}
	pw, err := getPassword(a.out, "Enter password")
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(pw)

	if confirm {
		again, err := getPassword(a.out, "Repeat password")
		if err != nil {
			return "", "", err
		}
		defer common.WipeByteArray(again)
		if string(pw) != string(again) {
			return "", "", errPasswordMismatch
		}
	}
	return email, string(pw), nil
}

func (a *App) SignUp(ctx context.Context) error {
	if a.isLoggedIn() {
		return errors.New("already signed in, logout first")
	}
	email, pw, err := a.readCredentials(true)
	if err != nil {
		return err
	}
	s, err := a.auth.SignUp(ctx, email, pw)
	return a.afterAuth(s, err)
}

func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errors.New("already signed in, logout first")
	}
	email, pw, err := a.readCredentials(false)
	if err != nil {
		return err
	}
	s, err := a.auth.SignIn(ctx, email, pw)
	return a.afterAuth(s, err)
}

// afterAuth reports the outcome. The actor changed, so the favorites view
// is reset either way.
func (a *App) afterAuth(s *services.Session, err error) error {
	var me *services.MigrationError
	switch {
	case errors.As(err, &me):
		a.favorites.Reset()
		fmt.Fprintf(a.out, "Signed in as %s\n", s.Email)
		fmt.Fprintf(a.out, "Warning: your anonymous favorites were not moved (%v). They will be retried at the next sign in.\n", me.Err)
		return nil
	case err != nil:
		return err
	}
	a.favorites.Reset()
	fmt.Fprintf(a.out, "Signed in as %s\n", s.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		return err
	}
	a.favorites.Reset()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if s := a.auth.Session(); s != nil {
		fmt.Fprintf(a.out, "%s (%s)\n", s.Email, s.UserID)
		return nil
	}
	id, err := a.identity.CurrentActorID(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "anonymous (%s)\n", id)
	return nil
}

func (a *App) Consent(ctx context.Context, args []string) error {
	if len(args) == 0 {
		ok, err := a.identity.HasConsentForCookies(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "cookie consent: %s\n", onOff(ok))
		return nil
	}

	var consent bool
	switch args[0] {
	case "on", "yes", "true":
		consent = true
	case "off", "no", "false":
	default:
		return fmt.Errorf("%w: consent [on|off]", errUsage)
	}
	if err := a.identity.SetConsent(ctx, consent); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "cookie consent: %s\n", onOff(consent))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
