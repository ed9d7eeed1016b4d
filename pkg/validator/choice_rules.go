package validator

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// In checks that the value equals one of values.
// Numbers are compared by value regardless of their Go type.
func In(values ...any) *Rule {
	return newLeaf("in", CheckFunc(checkIn), Params{"range": values})
}

// NotIn checks that the value equals none of values.
func NotIn(values ...any) *Rule {
	return newLeaf("in", CheckFunc(checkIn), Params{"range": values, "not": true})
}

func checkIn(value any, params Params, _ *Context) ([]Failure, error) {
	var values []any
	if r, ok := params.Get("range"); ok {
		items, ok := iterate(r)
		if !ok {
			return nil, errors.Join(ErrInvalidRule, fmt.Errorf("range must be iterable, got %s", typeName(r)))
		}
		for _, it := range items {
			values = append(values, it.value)
		}
	}

	found := slices.ContainsFunc(values, func(v any) bool { return looseEqual(value, v) })
	if params.Bool("not") {
		if found {
			return Fail("{Property} must not be in the list of acceptable values.", nil), nil
		}
		return nil, nil
	}
	if !found {
		return Fail("{Property} is not in the list of acceptable values.", nil), nil
	}
	return nil, nil
}

// looseEqual compares numbers by value and everything else deeply.
func looseEqual(a, b any) bool {
	if isNumeric(a) && isNumeric(b) {
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// isNumeric reports whether v has a numeric Go type. Numeric strings are not numeric here.
func isNumeric(v any) bool {
	k := reflect.ValueOf(v).Kind()
	return isIntKind(k) || isUintKind(k) || k == reflect.Float32 || k == reflect.Float64
}
