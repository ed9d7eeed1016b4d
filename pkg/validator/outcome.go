package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Path is a structural location inside validated data.
// Segments are string keys or int indexes.
type Path []any

// String renders the path with "." as separator.
// Literal dots and backslashes inside string segments are escaped with a backslash.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		switch s := seg.(type) {
		case int:
			parts[i] = strconv.Itoa(s)
		case string:
			parts[i] = escapeSegment(s)
		default:
			parts[i] = escapeSegment(fmt.Sprint(s))
		}
	}
	return strings.Join(parts, ".")
}

// Prefixed returns a new path with segs in front of p.
func (p Path) Prefixed(segs ...any) Path {
	out := make(Path, 0, len(segs)+len(p))
	out = append(out, segs...)
	return append(out, p...)
}

// ErrorItem is a single failure produced while evaluating a rule tree.
// Path is relative to the rule that produced the item and grows as the
// item travels up through Each and Nested rules.
type ErrorItem struct {
	Message string
	Params  map[string]any
	Path    Path
}

// Outcome is the result of evaluating one rule or subtree.
// The zero value is a valid outcome. Outcomes are never modified in place.
type Outcome struct {
	items []ErrorItem
}

// Valid returns a passing outcome.
func Valid() Outcome {
	return Outcome{}
}

// Invalid returns a failing outcome holding items.
func Invalid(items ...ErrorItem) Outcome {
	return Outcome{items: slices.Clone(items)}
}

// IsValid reports whether the outcome holds no errors.
func (o Outcome) IsValid() bool {
	return len(o.items) == 0
}

// Errors returns a copy of the outcome's error items in evaluation order.
func (o Outcome) Errors() []ErrorItem {
	return slices.Clone(o.items)
}

func (o Outcome) merge(other Outcome) Outcome {
	if other.IsValid() {
		return o
	}
	if o.IsValid() {
		return other
	}
	items := make([]ErrorItem, 0, len(o.items)+len(other.items))
	items = append(items, o.items...)
	items = append(items, other.items...)
	return Outcome{items: items}
}

// withMessage replaces the message of every item, keeping params and paths.
func (o Outcome) withMessage(message string) Outcome {
	if o.IsValid() || message == "" {
		return o
	}
	items := make([]ErrorItem, len(o.items))
	for i, item := range o.items {
		item.Message = message
		items[i] = item
	}
	return Outcome{items: items}
}

func (o Outcome) prefixed(segs ...any) Outcome {
	if o.IsValid() || len(segs) == 0 {
		return o
	}
	items := make([]ErrorItem, len(o.items))
	for i, item := range o.items {
		item.Path = item.Path.Prefixed(segs...)
		items[i] = item
	}
	return Outcome{items: items}
}

func escapeSegment(s string) string {
	if !strings.ContainsAny(s, `.\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, ".", `\.`)
}

// splitPath splits a dotted path into segments honouring backslash escapes.
// The second result marks segments that were a bare, unescaped "*".
func splitPath(path string) ([]string, []bool) {
	if path == "" {
		return nil, nil
	}

	var (
		segs    []string
		stars   []bool
		current strings.Builder
		escaped bool
		literal bool
	)
	flush := func() {
		seg := current.String()
		segs = append(segs, seg)
		stars = append(stars, seg == "*" && !literal)
		current.Reset()
		literal = false
	}

	for _, r := range path {
		switch {
		case escaped:
			current.WriteRune(r)
			literal = true
			escaped = false
		case r == '\\':
			escaped = true
		case r == '.':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	flush()

	return segs, stars
}
