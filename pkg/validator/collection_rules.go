package validator

import "reflect"

// Count checks the number of elements in a slice, array or map.
// A negative bound is not checked.
func Count(min, max int) *Rule {
	params := Params{}
	if min >= 0 {
		params["min"] = min
	}
	if max >= 0 {
		params["max"] = max
	}
	return newLeaf("count", CheckFunc(checkCount), params)
}

func checkCount(value any, params Params, _ *Context) ([]Failure, error) {
	rv := indirect(reflect.ValueOf(value))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
	default:
		return Fail("{Property} must be a slice, array or map.", map[string]any{
			"type": typeName(value),
		}), nil
	}

	n := rv.Len()
	if min, ok := params.Int("min"); ok && n < min {
		return Fail("{Property} must contain at least {min} items.", map[string]any{"min": min, "count": n}), nil
	}
	if max, ok := params.Int("max"); ok && n > max {
		return Fail("{Property} must contain at most {max} items.", map[string]any{"max": max, "count": n}), nil
	}
	return nil, nil
}
