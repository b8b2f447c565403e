package forms

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/common"
)

// MinPasswordLength is the shortest password registration accepts.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type rules struct {
	errs Errors
}

func (r *rules) required(field, label, value string) bool {
	if common.IsBlank(value) {
		r.set(field, label+" is required")
		return false
	}
	return true
}

func (r *rules) set(field, msg string) {
	if r.errs == nil {
		r.errs = Errors{}
	}
	r.errs[field] = msg
}

func (r *rules) email(value string) {
	if r.required(models.FieldEmail, "Email", value) && !emailPattern.MatchString(strings.TrimSpace(value)) {
		r.set(models.FieldEmail, "Email address is invalid")
	}
}

func ValidateRegistration(in models.RegisterInput) Errors {
	var r rules
	r.required(models.FieldUsername, "Username", in.Username)
	r.email(in.Email)
	if r.required(models.FieldPassword, "Password", in.Password) && utf8.RuneCountInString(in.Password) < MinPasswordLength {
		r.set(models.FieldPassword, "Password must be at least 6 characters")
	}
	r.required(models.FieldFirstName, "First name", in.FirstName)
	r.required(models.FieldLastName, "Last name", in.LastName)
	return r.errs
}

func ValidateLogin(in models.LoginInput) Errors {
	var r rules
	r.required(models.FieldUsername, "Username", in.Username)
	r.required(models.FieldPassword, "Password", in.Password)
	return r.errs
}

func ValidateProfile(in models.ProfileInput) Errors {
	var r rules
	r.required(models.FieldUsername, "Username", in.Username)
	r.email(in.Email)
	r.required(models.FieldFirstName, "First name", in.FirstName)
	r.required(models.FieldLastName, "Last name", in.LastName)
	return r.errs
}

// ValidatePost returns the validator for the post form. An image is only
// required when creating.
func ValidatePost(editing bool) Validator[models.PostInput] {
	return func(in models.PostInput) Errors {
		var r rules
		r.required(models.FieldTitle, "Title", in.Title)
		r.required(models.FieldDescription, "Description", in.Description)
		if !editing && in.Image == nil {
			r.set(models.FieldImage, "Image is required for new posts")
		}
		return r.errs
	}
}
