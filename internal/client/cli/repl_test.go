package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	ready    bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isReady() bool    { return f.ready }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(context.Context) error  { return f.record("whoami", nil) }
func (f *fakeExec) Profile(context.Context) error { return f.record("profile", nil) }
func (f *fakeExec) List(context.Context) error    { return f.record("list", nil) }
func (f *fakeExec) Mine(context.Context) error    { return f.record("mine", nil) }
func (f *fakeExec) New(context.Context) error     { return f.record("new", nil) }
func (f *fakeExec) Show(_ context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) Edit(_ context.Context, args []string) error {
	return f.record("edit", args)
}
func (f *fakeExec) Delete(_ context.Context, args []string) error {
	return f.record("delete", args)
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"l",
		"mine",
		"show 12",
		"new",
		"edit 12",
		"delete 12",
		"whoami",
		"profile",
		"frobnicate",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{ready: true}
	runREPL(context.Background(), exec, func() string { return "(alice)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"login", "list", "mine", "show", "new", "edit", "delete", "whoami", "profile", "logout"}, exec.calls)
	assert.Equal(t, []string{"12"}, exec.args[3])

	s := out.String()
	assert.Contains(t, s, "Available commands: register, login, (l)ist, show <id>, exit")
	assert.Contains(t, s, "edit <id>, delete <id>")
	assert.Contains(t, s, "Unknown command: frobnicate")
	assert.Contains(t, s, "blog (alice)> ")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list")))
	assert.Equal(t, []string{"list"}, exec.calls)
}

func TestRunREPL_StopsOnCancel(t *testing.T) {
	captureOutput(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list\n")))
	assert.Empty(t, exec.calls)
}

func TestHelpText_HidesMutationUntilReady(t *testing.T) {
	assert.NotContains(t, helpText(&fakeExec{loggedIn: true}), "edit <id>,")
	assert.Contains(t, helpText(&fakeExec{loggedIn: true, ready: true}), "edit <id>")
}

func TestApp_StatusAndBootstrap(t *testing.T) {
	out := captureOutput(t)
	auth := &fakeAuth{user: &models.User{ID: "1", Username: "alice", FirstName: "Alice"}}
	a := newTestApp(auth, newFakePosts(auth))

	assert.Equal(t, "(loading)", a.getStatus())

	a.bootstrap(context.Background())
	require.True(t, a.isReady())
	assert.Equal(t, "(alice)", a.getStatus())
	assert.Contains(t, out.String(), "Welcome back, Alice!")

	auth.user = nil
	assert.Equal(t, "", a.getStatus())
}
