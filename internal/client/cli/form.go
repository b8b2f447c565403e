package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/forms"
	"github.com/dmitrijs2005/gophblog/internal/common"
)

// getSimpleText, getPassword, getMultiline and confirm are indirections used
// to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
)

type inputKind int

const (
	kindLine inputKind = iota
	kindSecret
	kindMultiline
)

// maxFieldAttempts bounds how often one field is re-asked after its input
// could not be applied.
const maxFieldAttempts = 3

// field describes one prompt of a form.
type field[T any] struct {
	name   string
	prompt string
	kind   inputKind
	// current, when set, returns the value kept if the user enters nothing.
	current func(T) string
	set     func(ctx context.Context, v *T, input string) error
}

func setString[T any](dst func(*T) *string) func(context.Context, *T, string) error {
	return func(_ context.Context, v *T, s string) error {
		*dst(v) = s
		return nil
	}
}

func (a *App) ask(prompt string, kind inputKind) (string, error) {
	switch kind {
	case kindSecret:
		pw, err := getPassword(a.out)
		if err != nil {
			return "", err
		}
		defer common.WipeByteArray(pw)
		return string(pw), nil
	case kindMultiline:
		return getMultiline(a.reader, prompt, a.out)
	default:
		return getSimpleText(a.reader, prompt, a.out)
	}
}

// fill prompts for one field and stores the answer in f.
func fill[T any](ctx context.Context, a *App, f *forms.Form[T], fl field[T]) error {
	prompt := fl.prompt
	var keep string
	if fl.current != nil {
		keep = fl.current(f.Values())
	}
	if keep != "" {
		if fl.kind == kindMultiline {
			prompt += " (empty to keep the current text)"
		} else {
			prompt = fmt.Sprintf("%s [%s]", prompt, keep)
		}
	}

	for attempt := 1; ; attempt++ {
		input, err := a.ask(prompt, fl.kind)
		if err != nil {
			return err
		}
		if input == "" && keep != "" {
			f.ClearError(fl.name)
			return nil
		}

		var setErr error
		f.Update(func(v *T) { setErr = fl.set(ctx, v, input) }, fl.name)
		if setErr == nil {
			return nil
		}
		printlnFn("  " + setErr.Error())
		if attempt == maxFieldAttempts {
			return setErr
		}
	}
}

// runForm drives f through the prompts and the submit protocol. After a
// validation or field rejection it offers a retry that re-asks only the
// failing fields. The form is unmounted when runForm returns.
func runForm[T any](ctx context.Context, a *App, f *forms.Form[T], fields []field[T], action forms.Action[T]) forms.Result {
	defer f.Unmount()

	pending := fields
	for {
		for _, fl := range pending {
			if err := fill(ctx, a, f, fl); err != nil {
				return forms.Result{Outcome: forms.Failed, Err: err}
			}
		}

		res := f.Submit(ctx, action)
		if res.Outcome != forms.Invalid && res.Outcome != forms.Rejected {
			return res
		}

		errs := f.Errors()
		showErrors(errs)

		again, err := confirm(a.reader, "Fix and try again?", a.out)
		if err != nil || !again {
			return res
		}

		pending = pending[:0:0]
		for _, fl := range fields {
			if _, bad := errs[fl.name]; bad {
				pending = append(pending, fl)
			}
		}
		if len(pending) == 0 {
			pending = fields
		}
	}
}

func showErrors(errs forms.Errors) {
	for _, name := range errs.Fields() {
		printlnFn(fmt.Sprintf("  %s: %s", name, errs[name]))
	}
}

// describe turns a gateway error into the single line shown to the user.
func describe(err error) string {
	var (
		msg *client.MessageError
		rej *client.FieldRejection
	)
	switch {
	case errors.Is(err, client.ErrForbidden):
		return "You don't have permission to modify this post"
	case client.IsSessionExpired(err):
		return "Your session has expired, please log in again"
	case errors.Is(err, client.ErrNoSession):
		return "Please log in first"
	case errors.Is(err, client.ErrNotFound):
		return "Post not found"
	case errors.Is(err, client.ErrUnavailable):
		return "The server is unavailable, please try again later"
	case errors.As(err, &msg):
		return msg.Error()
	case errors.As(err, &rej):
		return "The server rejected the input"
	default:
		return "Error: " + err.Error()
	}
}

// describeCredentials is describe for login and registration, where a 401
// means the credentials were wrong rather than that a session expired.
func describeCredentials(err error) string {
	var msg *client.MessageError
	switch {
	case errors.As(err, &msg):
		return msg.Error()
	case errors.Is(err, client.ErrUnauthorized):
		return "Invalid credentials. Please try again."
	}
	return describe(err)
}

// notify reports a failed command as a single line.
func (a *App) notify(ctx context.Context, err error) {
	a.report(ctx, err, describe)
}

func (a *App) report(ctx context.Context, err error, describeFn func(error) string) {
	a.log.Debug(ctx, "command failed", "error", err)
	printlnFn(describeFn(err))
}

// finish reports the outcome of a form that did not succeed and returns its
// error.
func (a *App) finish(ctx context.Context, res forms.Result) error {
	return a.finishWith(ctx, res, describe)
}

func (a *App) finishWith(ctx context.Context, res forms.Result, describeFn func(error) string) error {
	switch res.Outcome {
	case forms.Failed:
		a.report(ctx, res.Err, describeFn)
	case forms.Invalid, forms.Rejected:
		printlnFn("Cancelled.")
	}
	return res.Err
}
