package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// MessageFormatter renders a message template with its parameters.
type MessageFormatter interface {
	Format(message string, params map[string]any) string
}

// FormatterFunc adapts a function to MessageFormatter.
type FormatterFunc func(message string, params map[string]any) string

func (f FormatterFunc) Format(message string, params map[string]any) string {
	return f(message, params)
}

// DefaultFormatter substitutes {name} placeholders without translation.
var DefaultFormatter MessageFormatter = FormatterFunc(FormatMessage)

var placeholderRegex = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// FormatMessage replaces every {name} placeholder with the matching
// parameter. Strings are inserted as is, numbers and bools in their text
// form, nil as "null" and fmt.Stringer values via String. Slices, maps,
// structs and other composite values are replaced by their type name.
// Placeholders without a parameter are left untouched.
func FormatMessage(message string, params map[string]any) string {
	if len(params) == 0 {
		return message
	}
	return placeholderRegex.ReplaceAllStringFunc(message, func(match string) string {
		v, ok := params[match[1:len(match)-1]]
		if !ok {
			return match
		}
		return stringify(v)
	})
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprintf("%T", v)
}

// upperFirst returns s with its first rune upper-cased.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// withLabel adds the property and Property parameters unless already present.
func withLabel(params map[string]any, label string) map[string]any {
	out := make(map[string]any, len(params)+2)
	for k, v := range params {
		out[k] = v
	}
	if _, ok := out["property"]; !ok {
		out["property"] = label
	}
	if _, ok := out["Property"]; !ok {
		out["Property"] = upperFirst(label)
	}
	return out
}
