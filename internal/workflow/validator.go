package workflow

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// Validator checks and sanitizes user input before it reaches the remote.
type Validator struct {
	validate *validator.Validate
	policy   *bluemonday.Policy
}

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{
		validate: v,
		policy:   bluemonday.StrictPolicy(),
	}
}

// Struct validates any tagged struct. It backs the echo validator.
func (v *Validator) Struct(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return toValidationError(err)
	}
	return nil
}

// Sanitize strips markup from free text and trims it. Entities are decoded
// before the policy runs so encoded tags are stripped too; the result stays
// HTML-escaped.
func (v *Validator) Sanitize(s string) string {
	return strings.TrimSpace(v.policy.Sanitize(html.UnescapeString(s)))
}

// Submission sanitizes the free-text fields of sub and validates the result.
func (v *Validator) Submission(sub model.Submission) (model.Submission, error) {
	sub.ProductID = v.Sanitize(sub.ProductID)
	sub.Comment = v.Sanitize(sub.Comment)
	sub.SubmitterName = v.Sanitize(sub.SubmitterName)
	sub.SubmitterEmail = strings.TrimSpace(sub.SubmitterEmail)
	sub.UserID = strings.TrimSpace(sub.UserID)
	if err := v.Struct(sub); err != nil {
		return sub, err
	}
	return sub, nil
}

// Rating reports whether r is an accepted rating.
func Rating(r int) bool {
	return r >= 1 && r <= 5
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperrors.NewValidationError(msgs...)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
