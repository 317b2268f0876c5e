package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userboarding/internal/api"
	"github.com/dmitrijs2005/userboarding/internal/client/services"
	"github.com/dmitrijs2005/userboarding/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const msgSuccess = "Success"

// Register prompts for the account fields and prints the server's message.
// Validation happens server-side; the passwords are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	msg, err := a.authService.Register(ctx, &api.RegisterRequest{
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		return err
	}

	printlnFn(msg)
	return nil
}

// Login prompts for credentials. On success the token pair is stored and
// the prompt shows the email.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if msg == msgSuccess {
		a.email = email
	}
	printlnFn(msg)
	return nil
}

// Renew rotates the stored token pair.
func (a *App) Renew(ctx context.Context) error {
	msg, err := a.authService.Renew(ctx)
	if errors.Is(err, services.ErrNotLoggedIn) {
		printlnFn("Not logged in")
		return nil
	}
	if err != nil {
		return err
	}

	printlnFn(msg)
	return nil
}

// Tokens prints the stored pair and when the access token expires.
func (a *App) Tokens(ctx context.Context) error {
	info, err := a.authService.Session(ctx)
	if errors.Is(err, services.ErrNotLoggedIn) {
		printlnFn("Not logged in")
		return nil
	}
	if err != nil {
		return err
	}

	printlnFn("Email:", info.Email)
	printlnFn("Access token:", info.AccessToken)
	printlnFn("Refresh token:", info.RefreshToken)
	if !info.AccessTokenExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(a.now()) {
			state = "expired, use renew"
		}
		printlnFn(fmt.Sprintf("Access token expires at: %s (%s)",
			info.AccessTokenExpiresAt.Local().Format("2006-01-02 15:04:05"), state))
	}
	if len(info.Roles) > 0 {
		printlnFn("Roles:", info.Roles)
	}
	return nil
}

// Logout forgets the stored token pair.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.email = ""
	return nil
}
