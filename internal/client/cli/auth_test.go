package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	out := captureOutput(t)
	stubAnswers(t, "alice", "secret")
	auth := &fakeAuth{ready: true}
	a := newTestApp(auth, newFakePosts(auth))

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, []models.LoginInput{{Username: "alice", Password: "secret"}}, auth.loginIn)
	assert.Contains(t, out.String(), "Logged in as alice")
}

func TestLogin_EmptyPasswordSendsNothing(t *testing.T) {
	out := captureOutput(t)
	stubAnswers(t, "alice", "", "n")
	auth := &fakeAuth{ready: true}
	a := newTestApp(auth, newFakePosts(auth))

	err := a.Login(context.Background())
	assert.Error(t, err)
	assert.Empty(t, auth.loginIn)
	assert.Contains(t, out.String(), "password: Password is required")
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestLogin_WrongCredentials(t *testing.T) {
	out := captureOutput(t)
	stubAnswers(t, "alice", "nope")
	auth := &fakeAuth{ready: true, loginErr: &client.MessageError{Status: 400, Message: "Unable to log in with provided credentials."}}
	a := newTestApp(auth, newFakePosts(auth))

	assert.Error(t, a.Login(context.Background()))
	assert.Contains(t, out.String(), "Unable to log in with provided credentials.")
	assert.Nil(t, auth.user)
}

func TestRegister_RetryAsksOnlyRejectedFields(t *testing.T) {
	out := captureOutput(t)
	stubAnswers(t,
		"alice", "alice@example.com", "secret1", "Alice", "Liddell",
		"y", "alice2",
	)
	auth := &fakeAuth{ready: true, registerErr: []error{
		&client.FieldRejection{Status: 400, Fields: map[string]string{"username": "A user with that username already exists."}},
	}}
	a := newTestApp(auth, newFakePosts(auth))

	require.NoError(t, a.Register(context.Background()))
	require.Len(t, auth.registerIn, 2)
	assert.Equal(t, "alice2", auth.registerIn[1].Username)
	assert.Equal(t, "alice@example.com", auth.registerIn[1].Email)
	assert.Equal(t, "secret1", auth.registerIn[1].Password)
	assert.Contains(t, out.String(), "username: A user with that username already exists.")
	assert.Contains(t, out.String(), "Welcome, Alice Liddell!")
}

func TestRegister_LocalValidation(t *testing.T) {
	out := captureOutput(t)
	stubAnswers(t, "alice", "not-an-email", "123", "Alice", " ", "n")
	auth := &fakeAuth{ready: true}
	a := newTestApp(auth, newFakePosts(auth))

	assert.Error(t, a.Register(context.Background()))
	assert.Empty(t, auth.registerIn)
	s := out.String()
	assert.Contains(t, s, "email: Email address is invalid")
	assert.Contains(t, s, "password: Password must be at least 6 characters")
	assert.Contains(t, s, "last_name: Last name is required")
}

func TestLogout(t *testing.T) {
	out := captureOutput(t)
	auth := &fakeAuth{ready: true, user: &models.User{ID: "1", Username: "alice"}}
	a := newTestApp(auth, newFakePosts(auth))

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Logged out")
}

func TestWhoAmI(t *testing.T) {
	out := captureOutput(t)
	auth := &fakeAuth{ready: true}
	a := newTestApp(auth, newFakePosts(auth))

	assert.ErrorIs(t, a.WhoAmI(context.Background()), client.ErrNoSession)
	assert.Contains(t, out.String(), "Not logged in")

	auth.user = &models.User{ID: "1", Username: "alice", Email: "a@example.com", FirstName: "Alice"}
	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Email:      a@example.com")
}

func TestWhoAmI_ExpiredSession(t *testing.T) {
	out := captureOutput(t)
	auth := &fakeAuth{ready: true, user: &models.User{ID: "1"}, whoamiErr: client.ErrUnauthorized}
	a := newTestApp(auth, newFakePosts(auth))

	assert.Error(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Your session has expired, please log in again")
}

func TestProfile_EmptyAnswersKeepValues(t *testing.T) {
	captureOutput(t)
	stubAnswers(t, "", "new@example.com", "", "")
	auth := &fakeAuth{ready: true, user: &models.User{ID: "1", Username: "alice", Email: "a@example.com", FirstName: "Alice", LastName: "Liddell"}}
	a := newTestApp(auth, newFakePosts(auth))

	require.NoError(t, a.Profile(context.Background()))
	assert.Equal(t, []models.ProfileInput{{
		Username: "alice", Email: "new@example.com", FirstName: "Alice", LastName: "Liddell",
	}}, auth.profileIn)
	assert.Equal(t, "new@example.com", auth.user.Email)
}

func TestProfile_RequiresLogin(t *testing.T) {
	captureOutput(t)
	auth := &fakeAuth{ready: true}
	a := newTestApp(auth, newFakePosts(auth))
	assert.ErrorIs(t, a.Profile(context.Background()), client.ErrNoSession)
}

func TestLogin_UnauthorizedIsBadCredentials(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server message", err: fmt.Errorf("login: %w", &client.MessageError{Status: 401, Message: "Invalid credentials."}), want: "Invalid credentials."},
		{name: "bare 401", err: fmt.Errorf("login: %w", client.ErrUnauthorized), want: "Invalid credentials. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			stubAnswers(t, "alice", "nope")
			auth := &fakeAuth{ready: true, loginErr: tt.err}
			a := newTestApp(auth, newFakePosts(auth))

			assert.Error(t, a.Login(context.Background()))
			assert.Contains(t, out.String(), tt.want)
			assert.NotContains(t, out.String(), "session has expired")
		})
	}
}
