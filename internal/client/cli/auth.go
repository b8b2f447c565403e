package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/forms"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// Register asks for the account details and creates the account. On success
// the new user is logged in.
func (a *App) Register(ctx context.Context) error {
	form := forms.New(models.RegisterInput{}, forms.ValidateRegistration)
	fields := []field[models.RegisterInput]{
		{name: models.FieldUsername, prompt: "Username", set: setString(func(v *models.RegisterInput) *string { return &v.Username })},
		{name: models.FieldEmail, prompt: "Email", set: setString(func(v *models.RegisterInput) *string { return &v.Email })},
		{name: models.FieldPassword, kind: kindSecret, set: setString(func(v *models.RegisterInput) *string { return &v.Password })},
		{name: models.FieldFirstName, prompt: "First name", set: setString(func(v *models.RegisterInput) *string { return &v.FirstName })},
		{name: models.FieldLastName, prompt: "Last name", set: setString(func(v *models.RegisterInput) *string { return &v.LastName })},
	}

	var user *models.User
	res := runForm(ctx, a, form, fields, func(ctx context.Context, in models.RegisterInput) error {
		u, err := a.authService.Register(ctx, in)
		user = u
		return err
	})
	if !res.OK() {
		return a.finishWith(ctx, res, describeCredentials)
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", user.DisplayName()))
	return nil
}

// Login asks for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	form := forms.New(models.LoginInput{}, forms.ValidateLogin)
	fields := []field[models.LoginInput]{
		{name: models.FieldUsername, prompt: "Username", set: setString(func(v *models.LoginInput) *string { return &v.Username })},
		{name: models.FieldPassword, kind: kindSecret, set: setString(func(v *models.LoginInput) *string { return &v.Password })},
	}

	var user *models.User
	res := runForm(ctx, a, form, fields, func(ctx context.Context, in models.LoginInput) error {
		u, err := a.authService.Login(ctx, in)
		user = u
		return err
	})
	if !res.OK() {
		return a.finishWith(ctx, res, describeCredentials)
	}

	printlnFn(fmt.Sprintf("Logged in as %s", user.Username))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.notify(ctx, err)
		return err
	}
	printlnFn("Logged out")
	return nil
}

// WhoAmI refreshes and prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return client.ErrNoSession
	}
	u, err := a.authService.WhoAmI(ctx)
	if err != nil {
		a.notify(ctx, err)
		return err
	}
	printUser(u)
	return nil
}

func printUser(u *models.User) {
	printlnFn(fmt.Sprintf("Username:   %s", u.Username))
	printlnFn(fmt.Sprintf("Email:      %s", u.Email))
	printlnFn(fmt.Sprintf("First name: %s", u.FirstName))
	printlnFn(fmt.Sprintf("Last name:  %s", u.LastName))
}

// Profile edits the current user's details. Every prompt shows the current
// value, which an empty answer keeps.
func (a *App) Profile(ctx context.Context) error {
	current := a.authService.CurrentUser()
	if current == nil {
		printlnFn(describe(client.ErrNoSession))
		return client.ErrNoSession
	}

	form := forms.New(models.ProfileInputFrom(*current), forms.ValidateProfile)
	fields := []field[models.ProfileInput]{
		{
			name: models.FieldUsername, prompt: "Username",
			current: func(v models.ProfileInput) string { return v.Username },
			set:     setString(func(v *models.ProfileInput) *string { return &v.Username }),
		},
		{
			name: models.FieldEmail, prompt: "Email",
			current: func(v models.ProfileInput) string { return v.Email },
			set:     setString(func(v *models.ProfileInput) *string { return &v.Email }),
		},
		{
			name: models.FieldFirstName, prompt: "First name",
			current: func(v models.ProfileInput) string { return v.FirstName },
			set:     setString(func(v *models.ProfileInput) *string { return &v.FirstName }),
		},
		{
			name: models.FieldLastName, prompt: "Last name",
			current: func(v models.ProfileInput) string { return v.LastName },
			set:     setString(func(v *models.ProfileInput) *string { return &v.LastName }),
		},
	}

	res := runForm(ctx, a, form, fields, func(ctx context.Context, in models.ProfileInput) error {
		_, err := a.authService.UpdateProfile(ctx, in)
		return err
	})
	if !res.OK() {
		return a.finish(ctx, res)
	}

	printlnFn("Profile updated")
	return nil
}
