package validator

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Number checks that the value is a number or a numeric string.
func Number() *Rule {
	return newLeaf("number", CheckFunc(checkNumber), nil)
}

// Min checks that the value is a number no less than min.
func Min(min float64) *Rule {
	return newLeaf("number", CheckFunc(checkNumber), Params{"min": min})
}

// Max checks that the value is a number no greater than max.
func Max(max float64) *Rule {
	return newLeaf("number", CheckFunc(checkNumber), Params{"max": max})
}

// Between checks that the value is a number within [min, max].
func Between(min, max float64) *Rule {
	return newLeaf("number", CheckFunc(checkNumber), Params{"min": min, "max": max})
}

// Integer checks that the value is an integer or an integer string.
// Floats with no fractional part are accepted.
func Integer() *Rule {
	return newLeaf("integer", CheckFunc(checkInteger), nil)
}

func checkNumber(value any, params Params, _ *Context) ([]Failure, error) {
	n, ok := toFloat(value)
	if !ok {
		return Fail("{Property} must be a number.", map[string]any{"value": value}), nil
	}
	return checkBounds(n, params), nil
}

func checkInteger(value any, params Params, _ *Context) ([]Failure, error) {
	n, ok := toFloat(value)
	if !ok || n != math.Trunc(n) {
		return Fail("{Property} must be an integer.", map[string]any{"value": value}), nil
	}
	return checkBounds(n, params), nil
}

func checkBounds(n float64, params Params) []Failure {
	if min, ok := params.Float("min"); ok && n < min {
		return Fail("{Property} must be no less than {min}.", map[string]any{"min": min, "value": n})
	}
	if max, ok := params.Float("max"); ok && n > max {
		return Fail("{Property} must be no greater than {max}.", map[string]any{"max": max, "value": n})
	}
	return nil
}

// toFloat converts numeric values and numeric strings to float64.
// Bools are not numbers.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case nil, bool:
		return 0, false
	case int:
		return float64(v), true
	case float64:
		return v, !math.IsNaN(v)
	case string:
		return parseNumber(v)
	}

	rv := reflect.ValueOf(value)
	switch {
	case isIntKind(rv.Kind()):
		return float64(rv.Int()), true
	case isUintKind(rv.Kind()):
		return float64(rv.Uint()), true
	case rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	case rv.Kind() == reflect.String:
		return parseNumber(rv.String())
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
