package user

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// mailboxSpace is the whitespace set excluded from unquoted local parts. It
// covers the Unicode spaces and BOM, not only ASCII whitespace.
const mailboxSpace = `\s\v\x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// mailboxPattern accepts a dot-separated or quoted local part and either a
// bracketed IPv4 literal or a hostname ending in a TLD of two or more
// letters. A quoted local part may not contain line terminators. Input is
// lowercased before matching.
var mailboxPattern = regexp.MustCompile(
	`^(([^<>()\[\]\\.,;:` + mailboxSpace + `@"]+(\.[^<>()\[\]\\.,;:` + mailboxSpace + `@"]+)*)|("[^\n\r\x{2028}\x{2029}]+"))` +
		`@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// ValidEmail reports whether email is an acceptable address.
func ValidEmail(email string) bool {
	return mailboxPattern.MatchString(strings.ToLower(email))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// FieldError describes one field that failed validation.
type FieldError struct {
	Field string // JSON field name, e.g. "firstname"
	Rule  string // failed rule, e.g. "min" or "mailbox"
	Param string // rule parameter, e.g. "3"
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s (%s=%s)", f.Field, f.Rule, f.Param)
	}
	return fmt.Sprintf("%s (%s)", f.Field, f.Rule)
}

// ValidationError lists every user field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "invalid user: " + strings.Join(parts, ", ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks the user's name lengths and email. The id is not checked.
func Validate(u User) error {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate user: %w", err)
	}

	ve := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, fe := range errs {
		ve.Fields = append(ve.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return ve
}
