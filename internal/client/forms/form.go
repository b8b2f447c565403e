// Package forms is the state engine shared by the register, login, profile
// and post forms: controlled values, per-field errors, and the submit
// protocol that reconciles local validation with server rejections.
package forms

import (
	"context"
	"errors"
	"maps"
	"sort"
	"strings"
	"sync"
)

// Errors maps a field name to the message shown next to it.
type Errors map[string]string

// Fields returns the field names in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidationError is returned by Submit when local validation fails. No
// request was made.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) FieldErrors() map[string]string {
	return e.Fields
}

// fieldErrorer is satisfied by errors that carry server-side field messages
// (client.FieldRejection).
type fieldErrorer interface {
	FieldErrors() map[string]string
}

// Validator checks values and returns the failing fields, or nil.
type Validator[T any] func(values T) Errors

// Action performs the network half of a submission.
type Action[T any] func(ctx context.Context, values T) error

// Outcome classifies how a submission ended.
type Outcome int

const (
	// Succeeded: the action returned nil and errors were cleared.
	Succeeded Outcome = iota
	// Invalid: local validation failed, nothing was sent.
	Invalid
	// Rejected: the server returned field errors, which replaced the form's.
	Rejected
	// Failed: the action failed without field errors; Err holds the cause.
	Failed
	// Skipped: another submission was already in flight.
	Skipped
	// Discarded: the form was unmounted, the result was not applied.
	Discarded
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Invalid:
		return "invalid"
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	case Discarded:
		return "discarded"
	}
	return "unknown"
}

// Result reports the outcome of Submit. Err is nil only for Succeeded and
// Skipped.
type Result struct {
	Outcome Outcome
	Err     error
}

func (r Result) OK() bool { return r.Outcome == Succeeded }

// Form holds the state of one mounted form.
type Form[T any] struct {
	mu         sync.Mutex
	values     T
	errors     Errors
	submitting bool
	mounted    bool
	validate   Validator[T]
}

// New returns a mounted form seeded with initial. A nil validate accepts
// everything.
func New[T any](initial T, validate Validator[T]) *Form[T] {
	if validate == nil {
		validate = func(T) Errors { return nil }
	}
	return &Form[T]{
		values:   initial,
		errors:   Errors{},
		mounted:  true,
		validate: validate,
	}
}

func (f *Form[T]) Values() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Update edits the values in place and clears the error of every field
// passed in touched.
func (f *Form[T]) Update(fn func(v *T), touched ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.mounted {
		return
	}
	fn(&f.values)
	for _, field := range touched {
		delete(f.errors, field)
	}
}

// Errors returns a copy of the current field errors.
func (f *Form[T]) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// Error returns the message for field, or "".
func (f *Form[T]) Error(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

// ClearError drops the message of one field, as editing that field does.
func (f *Form[T]) ClearError(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.errors, field)
}

func (f *Form[T]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Unmount detaches the form. An in-flight submission completes but its
// result is discarded, and submitting reads false from here on.
func (f *Form[T]) Unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mounted = false
	f.submitting = false
}

func (f *Form[T]) Mounted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mounted
}

// Submit validates the current values and, if they pass, runs action.
//
// A call made while another submission is in flight is a no-op. Field
// errors returned by action replace the form's errors verbatim. If the
// validator or action panics, submitting is reset before the panic propagates.
func (f *Form[T]) Submit(ctx context.Context, action Action[T]) Result {
	f.mu.Lock()
	if !f.mounted {
		f.mu.Unlock()
		return Result{Outcome: Discarded}
	}
	if f.submitting {
		f.mu.Unlock()
		return Result{Outcome: Skipped}
	}
	f.submitting = true
	values := f.values
	f.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			f.mu.Lock()
			f.submitting = false
			f.mu.Unlock()
			panic(p)
		}
	}()

	if errs := f.validate(values); len(errs) > 0 {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.submitting = false
		if !f.mounted {
			return Result{Outcome: Discarded}
		}
		f.errors = maps.Clone(errs)
		return Result{Outcome: Invalid, Err: &ValidationError{Fields: maps.Clone(errs)}}
	}

	err := action(ctx, values)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if !f.mounted {
		return Result{Outcome: Discarded, Err: err}
	}

	var fe fieldErrorer
	switch {
	case err == nil:
		f.errors = Errors{}
		return Result{Outcome: Succeeded}
	case errors.As(err, &fe) && len(fe.FieldErrors()) > 0:
		f.errors = Errors(maps.Clone(fe.FieldErrors()))
		return Result{Outcome: Rejected, Err: err}
	default:
		return Result{Outcome: Failed, Err: err}
	}
}
