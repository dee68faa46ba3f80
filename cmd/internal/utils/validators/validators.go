package validators

import (
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// Register installs the custom tags on the given validator.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("mintrim", MinTrimmed)
	_ = validate.RegisterValidation("notblank", NotBlank)
	_ = validate.RegisterValidation("nodupes", NoDupes)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// MinTrimmed checks the rune count of the value after trimming whitespace.
// Usage: `validate:"mintrim=50"`.
func MinTrimmed(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		log.Warnf("validator 'mintrim' has invalid param: %q", fl.Param())
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(field.String())) >= min
}

// NotBlank rejects strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s\n", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if _, exists := seen[val]; exists {
			return false
		}
		seen[val] = true
	}
	return true
}
