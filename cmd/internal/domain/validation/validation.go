// Package validation holds the input predicates of the moderation workflows.
// Every predicate is pure: it never touches storage and returns the same
// Result for the same input.
package validation

import (
	"errors"
	"reflect"

	"bizdirectory/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
)

const (
	MinClaimMessageLength     = 50
	MinRejectionMessageLength = 10
	MaxReviewTitleLength      = 255
	MaxReviewContentLength    = 2000
	MaxMassReviewIDs          = 50
	MaxBulkDeleteIDs          = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	validators.Register(v)
	return v
}

// Result is the outcome of a predicate. Error holds the first problem in
// a human readable form, Problems holds every problem keyed by field.
type Result struct {
	Valid    bool
	Error    string
	Problems map[string][]string
}

func ok() Result {
	return Result{Valid: true}
}

func invalid(field, problem string) Result {
	return Result{
		Valid:    false,
		Error:    field + ": " + problem,
		Problems: map[string][]string{field: {problem}},
	}
}

func check(s any) Result {
	err := validate.Struct(s)
	if err == nil {
		return ok()
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return invalid("body", err.Error())
	}

	res := Result{Problems: map[string][]string{}}
	for _, fe := range ve {
		field := fe.Field()
		problem := problemFor(fe)
		if res.Error == "" {
			res.Error = field + ": " + problem
		}
		res.Problems[field] = append(res.Problems[field], problem)
	}
	return res
}

func problemFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "mintrim":
		return "must be at least " + fe.Param() + " characters"
	case "notblank":
		return "cannot be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " items"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return "must contain at most " + fe.Param() + " items"
		}
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "nodupes":
		return "must not contain duplicates"
	default:
		return "is invalid"
	}
}
