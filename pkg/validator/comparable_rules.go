package validator

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// Comparison operators accepted by Compare and CompareProperty.
const (
	OpEqual          = "=="
	OpNotEqual       = "!="
	OpGreater        = ">"
	OpGreaterOrEqual = ">="
	OpLess           = "<"
	OpLessOrEqual    = "<="
)

var operators = []string{OpEqual, OpNotEqual, OpGreater, OpGreaterOrEqual, OpLess, OpLessOrEqual}

var compareMessages = map[string]string{
	OpEqual:          "{Property} must be equal to \"{targetValueOrProperty}\".",
	OpNotEqual:       "{Property} must not be equal to \"{targetValueOrProperty}\".",
	OpGreater:        "{Property} must be greater than \"{targetValueOrProperty}\".",
	OpGreaterOrEqual: "{Property} must be greater than or equal to \"{targetValueOrProperty}\".",
	OpLess:           "{Property} must be less than \"{targetValueOrProperty}\".",
	OpLessOrEqual:    "{Property} must be less than or equal to \"{targetValueOrProperty}\".",
}

// Compare checks the value against target with op.
// Numbers are compared numerically and strings lexically.
func Compare(op string, target any) *Rule {
	if !slices.Contains(operators, op) {
		return invalidRule(KindLeaf, fmt.Sprintf("unknown operator %q", op))
	}
	return newLeaf("compare", CheckFunc(checkCompare), Params{"operator": op, "targetValue": target})
}

// CompareProperty checks the value against a sibling property of the
// current data set.
func CompareProperty(op, property string) *Rule {
	if !slices.Contains(operators, op) {
		return invalidRule(KindLeaf, fmt.Sprintf("unknown operator %q", op))
	}
	if property == "" {
		return invalidRule(KindLeaf, "target property is empty")
	}
	return newLeaf("compare", CheckFunc(checkCompare), Params{"operator": op, "targetProperty": property})
}

func checkCompare(value any, params Params, ec *Context) ([]Failure, error) {
	op := params.String("operator")
	if op == "" {
		op = OpEqual
	}
	message, ok := compareMessages[op]
	if !ok {
		return nil, fmt.Errorf("unknown operator %q", op)
	}

	target, display := params["targetValue"], params["targetValue"]
	if property := params.String("targetProperty"); property != "" {
		target, _ = ec.DataSet().Property(property)
		display = property
	}

	passed, err := compareValues(op, value, target)
	if err != nil {
		return nil, err
	}
	if passed {
		return nil, nil
	}

	return Fail(message, map[string]any{
		"targetValue":           params["targetValue"],
		"targetProperty":        params.String("targetProperty"),
		"targetValueOrProperty": display,
		"value":                 value,
	}), nil
}

func compareValues(op string, a, b any) (bool, error) {
	switch op {
	case OpEqual:
		return looseEqual(a, b), nil
	case OpNotEqual:
		return !looseEqual(a, b), nil
	}

	c, ok := order(a, b)
	if !ok {
		return false, nil
	}
	switch op {
	case OpGreater:
		return c > 0, nil
	case OpGreaterOrEqual:
		return c >= 0, nil
	case OpLess:
		return c < 0, nil
	case OpLessOrEqual:
		return c <= 0, nil
	}
	return false, errors.New("unknown operator " + op)
}

// order compares two numbers or two strings.
func order(a, b any) (int, bool) {
	if isNumeric(a) || isNumeric(b) {
		fa, okA := toFloat(a)
		fb, okB := toFloat(b)
		if !okA || !okB {
			return 0, false
		}
		return cmp.Compare(fa, fb), true
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.String && rb.Kind() == reflect.String {
		return cmp.Compare(ra.String(), rb.String()), true
	}
	return 0, false
}
