package validator

import "reflect"

// IsEmpty reports whether value is nil, an empty string or an empty slice,
// array or map. Non-nil pointers are followed. Zero numbers, false and "0"
// are not empty; checks that need a looser notion take it as a parameter.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmpty(rv.Elem().Interface())
	case reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
