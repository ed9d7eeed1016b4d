package validator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func newResult(t *testing.T) *validator.Result {
	t.Helper()
	data := map[string]any{
		"name": "",
		"items": []any{
			map[string]any{"sku": "a.b", "qty": 0},
			map[string]any{"sku": "", "qty": 2},
		},
	}
	res, err := validator.New().Validate(context.Background(), data, validator.Rules{
		"name": {validator.Required(), validator.Length(2, -1)},
		"items": {validator.Each(validator.Nested(
			validator.On("sku", validator.Required()),
			validator.On("qty", validator.Min(1)),
		))},
	})
	require.NoError(t, err)
	return res
}

func TestResult(t *testing.T) {
	t.Parallel()

	res := newResult(t)

	t.Run("properties", func(t *testing.T) {
		assert.False(t, res.IsValid())
		assert.Equal(t, []string{"items", "name"}, res.Properties())
		assert.True(t, res.Has("name"))
		assert.False(t, res.Has("email"))
	})

	t.Run("property errors keep relative paths", func(t *testing.T) {
		errs := res.PropertyErrors("items")
		require.Len(t, errs, 2)
		assert.Equal(t, validator.Path{0, "qty"}, errs[0].Path)
		assert.Equal(t, validator.Path{1, "sku"}, errs[1].Path)
		assert.Equal(t, validator.Path{"items", 1, "sku"}, errs[1].FullPath())
	})

	t.Run("first", func(t *testing.T) {
		first, ok := res.First()
		require.True(t, ok)
		assert.Equal(t, "items", first.Property)
		assert.Equal(t, "{Property} must be no less than {min}.", first.Message)
		assert.Equal(t, float64(1), first.Params["min"])

		_, ok = (&validator.Result{}).First()
		assert.False(t, ok)
	})

	t.Run("messages indexed by path", func(t *testing.T) {
		assert.Equal(t, map[string][]string{
			"items.0.qty": {"Qty must be no less than 1."},
			"items.1.sku": {"Sku cannot be blank."},
			"name":        {"Name cannot be blank.", "Name must contain at least 2 characters."},
		}, res.MessagesIndexedByPath(nil))
	})

	t.Run("custom formatter", func(t *testing.T) {
		upper := validator.FormatterFunc(func(message string, params map[string]any) string {
			return strings.ToUpper(validator.FormatMessage(message, params))
		})
		assert.Equal(t, []string{"NAME CANNOT BE BLANK.", "NAME MUST CONTAIN AT LEAST 2 CHARACTERS."}, res.PropertyMessages("name", upper))
	})

	t.Run("err", func(t *testing.T) {
		err := res.Err(nil)
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, []string{"items.0.qty", "items.1.sku", "name"}, verrs.Fields())
		assert.Equal(t, validator.Path{"items", 0, "qty"}, verrs[0].Path)
	})

	t.Run("errors are copies", func(t *testing.T) {
		errs := res.Errors()
		errs[0].Property = "changed"
		assert.Equal(t, "items", res.Errors()[0].Property)
	})
}

func TestPath_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path validator.Path
		want string
	}{
		{"empty", nil, ""},
		{"mixed", validator.Path{"items", 2, "name"}, "items.2.name"},
		{"escapes dots", validator.Path{"a.b", "c"}, `a\.b.c`},
		{"escapes backslashes", validator.Path{`a\b`}, `a\\b`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}

	t.Run("prefixed does not modify the original", func(t *testing.T) {
		p := validator.Path{"b"}
		assert.Equal(t, validator.Path{"a", 0, "b"}, p.Prefixed("a", 0))
		assert.Equal(t, validator.Path{"b"}, p)
	})
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Valid().IsValid())
	assert.Empty(t, validator.Valid().Errors())

	items := []validator.ErrorItem{{Message: "a"}}
	out := validator.Invalid(items...)
	items[0].Message = "changed"

	assert.False(t, out.IsValid())
	assert.Equal(t, "a", out.Errors()[0].Message)
}
