package validator

import (
	"maps"
	"slices"
	"strings"
)

// Field declares the rules applied to one path inside a structured value.
type Field struct {
	Path  string
	Rules []*Rule
}

// On is a shorthand for Field{Path: path, Rules: rules}.
//
// Path segments are separated by dots. A backslash escapes the next
// character, so `a\.b` addresses the single key "a.b". A bare "*" segment
// applies the remaining path to every element of the collection found so
// far: "items.*.name" is equivalent to
//
//	On("items", Each(Nested(On("name", rules...))))
func On(path string, rules ...*Rule) Field {
	return Field{Path: path, Rules: rules}
}

type nestedField struct {
	path  string
	segs  []string
	rules []*Rule
}

// Nested applies each field's rules to the value found at the field's path.
// Fields are evaluated in declaration order and error paths are prefixed
// with the field's path segments. A Nested rule without fields validates the
// value with the rules it provides through RulesProvider. An empty field
// path makes the rule invalid.
func Nested(fields ...Field) *Rule {
	for _, f := range fields {
		if f.Path == "" {
			return invalidRule(KindNested, "nested field path is empty")
		}
	}
	return &Rule{kind: KindNested, fields: expandFields(fields)}
}

// RequirePath reports a "not found" error for fields whose path does not
// exist in the value instead of validating nil against their rules.
func (r *Rule) RequirePath() *Rule {
	c := r.clone()
	c.requirePath = true
	return c
}

// WithNoPathMessage overrides the message used by RequirePath.
func (r *Rule) WithNoPathMessage(message string) *Rule {
	c := r.clone()
	c.noPathMessage = message
	return c
}

// WithIncorrectKeyMessage overrides the message an Each rule reports for
// keys that are neither strings nor integers.
func (r *Rule) WithIncorrectKeyMessage(message string) *Rule {
	c := r.clone()
	c.incorrectKeyMessage = message
	return c
}

// Fields returns the declared paths of a Nested rule after expanding "*" segments.
func (r *Rule) Fields() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.path
	}
	return out
}

// expandFields parses paths and folds "*" segments into Each rules.
// Fields sharing the same prefix before a "*" are merged into a single
// Each(Nested(...)) at the position of the first one.
func expandFields(fields []Field) []nestedField {
	out := make([]nestedField, 0, len(fields))
	eachAt := make(map[string]int)
	eachFields := make(map[string][]Field)

	for _, f := range fields {
		segs, stars := splitPath(f.Path)
		star := slices.Index(stars, true)
		if star < 0 {
			out = append(out, nestedField{path: f.Path, segs: segs, rules: f.Rules})
			continue
		}

		prefix := joinSegments(segs[:star], stars[:star])
		rest := joinSegments(segs[star+1:], stars[star+1:])
		if _, ok := eachAt[prefix]; !ok {
			eachAt[prefix] = len(out)
			out = append(out, nestedField{path: prefix, segs: segs[:star]})
		}
		eachFields[prefix] = append(eachFields[prefix], Field{Path: rest, Rules: f.Rules})
	}

	for _, prefix := range slices.Sorted(maps.Keys(eachAt)) {
		// "items.*" rules apply to each element, deeper paths go through Nested
		var direct []*Rule
		var deeper []Field
		for _, f := range eachFields[prefix] {
			if f.Path == "" {
				direct = append(direct, f.Rules...)
			} else {
				deeper = append(deeper, f)
			}
		}
		if len(deeper) > 0 {
			direct = append(direct, Nested(deeper...))
		}
		out[eachAt[prefix]].rules = []*Rule{Each(direct...)}
	}

	return out
}

func joinSegments(segs []string, stars []bool) string {
	escaped := make([]string, len(segs))
	for i, s := range segs {
		escaped[i] = escapeSegment(s)
		if s == "*" && !stars[i] {
			escaped[i] = `\*`
		}
	}
	return strings.Join(escaped, ".")
}
