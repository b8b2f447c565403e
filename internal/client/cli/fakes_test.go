package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/client/attachment"
	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// ------------ output and input seams ------------

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		o.mu.Lock()
		o.lines = append(o.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		o.mu.Unlock()
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return o
}

// stubAnswers feeds every prompt (text, password, multiline, confirm) from
// answers in order. Running out is reported as io.EOF.
func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	next := func() (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}

	origST, origGP, origML, origC := getSimpleText, getPassword, getMultiline, confirm
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getPassword = func(io.Writer) ([]byte, error) {
		s, err := next()
		return []byte(s), err
	}
	confirm = func(*bufio.Reader, string, io.Writer) (bool, error) {
		s, err := next()
		return s == "y", err
	}
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline, confirm = origST, origGP, origML, origC
	})
}

func newTestApp(auth *fakeAuth, posts *fakePosts) *App {
	return &App{
		authService: auth,
		postService: posts,
		encode:      fakeEncode,
		log:         logging.Nop(),
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         io.Discard,
	}
}

func fakeEncode(_ context.Context, path string) (*attachment.Attachment, error) {
	if strings.HasSuffix(path, ".txt") {
		return nil, fmt.Errorf("%w: text/plain", attachment.ErrUnsupportedType)
	}
	name := path[strings.LastIndex(path, "/")+1:]
	return &attachment.Attachment{
		Upload:    models.Upload{Filename: name, ContentType: "image/png", Data: []byte(name)},
		Thumbnail: []byte{0xff, 0xd8},
		Width:     10,
		Height:    10,
	}, nil
}

// ------------ fake services ------------

type fakeAuth struct {
	user  *models.User
	ready bool

	registerIn  []models.RegisterInput
	registerErr []error
	loginIn     []models.LoginInput
	loginErr    error
	logoutErr   error
	profileIn   []models.ProfileInput
	profileErr  error
	whoamiErr   error
}

func (f *fakeAuth) Register(_ context.Context, in models.RegisterInput) (*models.User, error) {
	f.registerIn = append(f.registerIn, in)
	if n := len(f.registerIn) - 1; n < len(f.registerErr) && f.registerErr[n] != nil {
		return nil, f.registerErr[n]
	}
	f.user = &models.User{ID: "1", Username: in.Username, FirstName: in.FirstName, LastName: in.LastName}
	return f.user, nil
}

func (f *fakeAuth) Login(_ context.Context, in models.LoginInput) (*models.User, error) {
	f.loginIn = append(f.loginIn, in)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.user = &models.User{ID: "1", Username: in.Username}
	return f.user, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.user = nil
	return nil
}

func (f *fakeAuth) Bootstrap(context.Context) (*models.User, error) {
	f.ready = true
	return f.user, nil
}

func (f *fakeAuth) WhoAmI(context.Context) (*models.User, error) {
	if f.whoamiErr != nil {
		return nil, f.whoamiErr
	}
	return f.user, nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, in models.ProfileInput) (*models.User, error) {
	f.profileIn = append(f.profileIn, in)
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	u := f.user.Merge(models.User{Username: in.Username, Email: in.Email, FirstName: in.FirstName, LastName: in.LastName})
	f.user = &u
	return f.user, nil
}

func (f *fakeAuth) CurrentUser() *models.User { return f.user }
func (f *fakeAuth) Ready() bool               { return f.ready }

type fakePosts struct {
	auth  *fakeAuth
	posts map[models.ID]models.Post

	listCalls int
	listErr   error
	createIn  []models.PostInput
	createErr error
	updateIn  []models.PostInput
	updateErr error
	deleted   []models.ID
	deleteErr error
}

func newFakePosts(auth *fakeAuth, posts ...models.Post) *fakePosts {
	f := &fakePosts{auth: auth, posts: map[models.ID]models.Post{}}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakePosts) List(context.Context) ([]models.Post, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePosts) ListMine(ctx context.Context) ([]models.Post, error) {
	all, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	var mine []models.Post
	for _, p := range all {
		if f.CanMutate(p) {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

func (f *fakePosts) Get(_ context.Context, id models.ID) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &p, nil
}

func (f *fakePosts) Create(_ context.Context, in models.PostInput) (*models.Post, error) {
	f.createIn = append(f.createIn, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := models.Post{ID: "100", Title: in.Title, Description: in.Description, Author: f.auth.user.ID, AuthorUsername: f.auth.user.Username}
	if in.Image != nil {
		p.Image = "http://localhost:8000/media/" + in.Image.Filename
	}
	f.posts[p.ID] = p
	return &p, nil
}

func (f *fakePosts) Update(_ context.Context, id models.ID, in models.PostInput) (*models.Post, error) {
	f.updateIn = append(f.updateIn, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p := f.posts[id]
	p.Title, p.Description = in.Title, in.Description
	f.posts[id] = p
	return &p, nil
}

func (f *fakePosts) Delete(_ context.Context, id models.ID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	delete(f.posts, id)
	return nil
}

func (f *fakePosts) CanMutate(p models.Post) bool {
	return f.auth.ready && f.auth.user != nil && f.auth.user.ID == p.Author
}
