package validator_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func BenchmarkValidateFlat(b *testing.B) {
	v := validator.New()
	rules := validator.Rules{
		"name":  {validator.Required(), validator.Length(2, 50)},
		"email": {validator.Required(), validator.Email()},
		"age":   {validator.Integer(), validator.Between(18, 120)},
		"role":  {validator.In("admin", "editor", "viewer")},
	}
	data := map[string]any{"name": "Jane", "email": "jane@example.com", "age": 30, "role": "editor"}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := v.Validate(context.Background(), data, rules); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateEachNested(b *testing.B) {
	items := make([]any, 100)
	for i := range items {
		items[i] = map[string]any{"sku": fmt.Sprintf("sku-%d", i), "qty": i % 5}
	}
	data := map[string]any{"items": items}

	v := validator.New()
	rules := validator.Rules{
		"items": {validator.Each(validator.Nested(
			validator.On("sku", validator.Required(), validator.Match(`^sku-\d+$`)),
			validator.On("qty", validator.Min(1)),
		))},
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := v.Validate(context.Background(), data, rules); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormatMessage(b *testing.B) {
	params := map[string]any{"Property": "Name", "min": 2, "max": 50}

	b.ReportAllocs()
	for b.Loop() {
		validator.FormatMessage("{Property} must contain between {min} and {max} characters.", params)
	}
}
