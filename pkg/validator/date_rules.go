package validator

import (
	"time"
)

// Date checks that the value is a time.Time or a string in layout.
// An empty layout means time.RFC3339.
func Date(layout string) *Rule {
	return newLeaf("date", CheckFunc(checkDate), Params{"layout": layout})
}

// DateBetween checks that the value is a date within [min, max].
// A zero bound is not checked.
func DateBetween(layout string, min, max time.Time) *Rule {
	params := Params{"layout": layout}
	if !min.IsZero() {
		params["min"] = min
	}
	if !max.IsZero() {
		params["max"] = max
	}
	return newLeaf("date", CheckFunc(checkDate), params)
}

func checkDate(value any, params Params, _ *Context) ([]Failure, error) {
	layout := params.String("layout")
	if layout == "" {
		layout = time.RFC3339
	}

	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return Fail("{Property} is not a valid date.", nil), nil
		}
		t = *v
	default:
		s, ok := stringValue(value)
		if !ok {
			return Fail("{Property} is not a valid date.", nil), nil
		}
		parsed, err := time.Parse(layout, s)
		if err != nil {
			return Fail("{Property} is not a valid date.", map[string]any{"layout": layout}), nil
		}
		t = parsed
	}

	if min, ok := params["min"].(time.Time); ok && t.Before(min) {
		return Fail("{Property} must be no earlier than {min}.", map[string]any{
			"min": min.Format(layout),
		}), nil
	}
	if max, ok := params["max"].(time.Time); ok && t.After(max) {
		return Fail("{Property} must be no later than {max}.", map[string]any{
			"max": max.Format(layout),
		}), nil
	}
	return nil, nil
}
