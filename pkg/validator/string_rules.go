package validator

import (
	"reflect"
	"strings"
	"unicode/utf8"
)

// Required fails for nil, blank strings and empty slices, arrays and maps.
// It is never skipped on empty values, even under a skip-on-empty default.
func Required() *Rule {
	return newLeaf("required", CheckFunc(checkRequired), nil).NeverSkipOnEmpty()
}

// Length checks the number of characters in a string. A negative bound is not checked.
func Length(min, max int) *Rule {
	params := Params{}
	if min >= 0 {
		params["min"] = min
	}
	if max >= 0 {
		params["max"] = max
	}
	return newLeaf("length", CheckFunc(checkLength), params)
}

// MinLength checks that a string has at least min characters.
func MinLength(min int) *Rule {
	return Length(min, -1)
}

// MaxLength checks that a string has at most max characters.
func MaxLength(max int) *Rule {
	return Length(-1, max)
}

func checkRequired(value any, _ Params, _ *Context) ([]Failure, error) {
	if s, ok := stringValue(value); ok {
		value = strings.TrimSpace(s)
	}
	if IsEmpty(value) {
		return Fail("{Property} cannot be blank.", nil), nil
	}
	return nil, nil
}

func checkLength(value any, params Params, _ *Context) ([]Failure, error) {
	s, ok := stringValue(value)
	if !ok {
		return Fail("{Property} must be a string.", map[string]any{"type": typeName(value)}), nil
	}

	n := utf8.RuneCountInString(s)
	if min, ok := params.Int("min"); ok && n < min {
		return Fail("{Property} must contain at least {min} characters.", map[string]any{
			"min":    min,
			"length": n,
		}), nil
	}
	if max, ok := params.Int("max"); ok && n > max {
		return Fail("{Property} must contain at most {max} characters.", map[string]any{
			"max":    max,
			"length": n,
		}), nil
	}
	return nil, nil
}

// stringValue returns the value of a string or string-kinded type.
func stringValue(value any) (string, bool) {
	if s, ok := value.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
