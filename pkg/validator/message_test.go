package validator_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

type point struct{ X, Y int }

func TestFormatMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		params  map[string]any
		want    string
	}{
		{"no params", "{Property} is invalid.", nil, "{Property} is invalid."},
		{"string", "{Property} is invalid.", map[string]any{"Property": "Email"}, "Email is invalid."},
		{"int", "at least {min}", map[string]any{"min": 3}, "at least 3"},
		{"float", "at most {max}", map[string]any{"max": 2.5}, "at most 2.5"},
		{"whole float", "at most {max}", map[string]any{"max": float64(10)}, "at most 10"},
		{"uint", "{n}", map[string]any{"n": uint8(7)}, "7"},
		{"bool", "{b}", map[string]any{"b": true}, "true"},
		{"nil", "{v}", map[string]any{"v": nil}, "null"},
		{"stringer", "{d}", map[string]any{"d": time.Second}, "1s"},
		{"error", "{e}", map[string]any{"e": errors.New("boom")}, "boom"},
		{"slice", "{v}", map[string]any{"v": []string{"a"}}, "[]string"},
		{"map", "{v}", map[string]any{"v": map[string]int{}}, "map[string]int"},
		{"struct", "{v}", map[string]any{"v": point{}}, "validator_test.point"},
		{"unknown placeholder", "{a} {b}", map[string]any{"a": 1}, "1 {b}"},
		{"repeated", "{a}{a}", map[string]any{"a": "x"}, "xx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.FormatMessage(tt.message, tt.params))
			assert.Equal(t, tt.want, validator.DefaultFormatter.Format(tt.message, tt.params))
		})
	}
}

func TestLabelParams(t *testing.T) {
	t.Parallel()

	t.Run("injects property and Property", func(t *testing.T) {
		res := validateValue(t, "", validator.Required())
		e, _ := res.First()
		assert.Equal(t, "value", e.Params["property"])
		assert.Equal(t, "Value", e.Params["Property"])
	})

	t.Run("keeps params set by the check", func(t *testing.T) {
		rule := validator.Callback(func(any, *validator.Context) ([]validator.Failure, error) {
			return validator.Fail("{property}", map[string]any{"property": "custom"}), nil
		})
		res := validateValue(t, "", rule)
		assert.Equal(t, []string{"custom"}, res.Messages(nil))
	})

	t.Run("message override keeps params", func(t *testing.T) {
		res := validateValue(t, "ab", validator.MinLength(3).WithMessage("{property} needs {min}+ chars"))
		assert.Equal(t, []string{"value needs 3+ chars"}, res.Messages(nil))
	})

	t.Run("unicode label", func(t *testing.T) {
		res := validate(t, map[string]any{"élan": ""}, validator.Rules{"élan": {validator.Required()}})
		assert.Equal(t, []string{"Élan cannot be blank."}, res.Messages(nil))
	})
}
