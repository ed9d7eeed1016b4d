package validator

import (
	"errors"
	"maps"
	"slices"
)

// Kind identifies the variant of a Rule.
type Kind uint8

const (
	KindLeaf Kind = iota + 1
	KindSequence
	KindStopOnFirstError
	KindEach
	KindNested
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindSequence:
		return "sequence"
	case KindStopOnFirstError:
		return "stop_on_first_error"
	case KindEach:
		return "each"
	case KindNested:
		return "nested"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// SkipMode controls whether a rule is skipped for empty values.
type SkipMode uint8

const (
	// SkipUnset defers to the enclosing Group or the validator default.
	SkipUnset SkipMode = iota
	SkipNever
	SkipAlways
	SkipCustom
)

// EmptyFunc decides whether value counts as empty for SkipCustom.
type EmptyFunc func(value any) bool

// WhenFunc decides whether a rule applies to value at all.
type WhenFunc func(value any, ec *Context) bool

// Rule is a node of a rule tree. Rules are immutable: every modifier
// method returns a modified copy, so a rule can be shared between trees
// and between concurrent validations.
type Rule struct {
	kind Kind
	err  error

	name    string
	check   Check
	params  Params
	message string

	rules  []*Rule
	fields []nestedField

	requirePath           bool
	noPathMessage         string
	incorrectInputMessage string
	incorrectKeyMessage   string

	skipEmpty    SkipMode
	emptyFunc    EmptyFunc
	skipError    bool
	skipErrorSet bool
	when         WhenFunc
}

// Leaf creates a rule that delegates to check with static params.
func Leaf(check Check, params Params) *Rule {
	if check == nil {
		return invalidRule(KindLeaf, "leaf check is nil")
	}
	return newLeaf("", check, params)
}

// Use creates a leaf rule whose check is resolved by name from the
// validator's registry when the rule is evaluated.
func Use(name string, params Params) *Rule {
	if name == "" {
		return invalidRule(KindLeaf, "check name is empty")
	}
	return &Rule{kind: KindLeaf, name: name, params: params}
}

// Sequence applies rules in order to the same value and keeps every failure.
func Sequence(rules ...*Rule) *Rule {
	return &Rule{kind: KindSequence, rules: rules}
}

// StopOnFirstError applies rules in order and stops at the first failing one.
func StopOnFirstError(rules ...*Rule) *Rule {
	return &Rule{kind: KindStopOnFirstError, rules: rules}
}

// Each applies rules to every element of an iterable value.
// Error paths are prefixed with the element's key or index.
func Each(rules ...*Rule) *Rule {
	return &Rule{kind: KindEach, rules: rules}
}

// Group bundles rules under one set of modifiers. Members that do not set
// skip-on-empty or skip-on-error themselves inherit the group's settings.
func Group(rules ...*Rule) *Rule {
	return &Rule{kind: KindGroup, rules: rules}
}

func newLeaf(name string, check Check, params Params) *Rule {
	return &Rule{kind: KindLeaf, name: name, check: check, params: params}
}

func invalidRule(kind Kind, reason string) *Rule {
	return &Rule{kind: kind, err: errors.Join(ErrInvalidRule, errors.New(reason))}
}

// Kind returns the rule variant.
func (r *Rule) Kind() Kind { return r.kind }

// Name returns the check name of a leaf rule.
func (r *Rule) Name() string { return r.name }

// Params returns a copy of the leaf's static parameters.
func (r *Rule) Params() Params {
	return maps.Clone(r.params)
}

// Rules returns the member rules of a Sequence, StopOnFirstError, Each or Group.
func (r *Rule) Rules() []*Rule { return slices.Clone(r.rules) }

// Named sets the name reported by Name. Rules created with Use are
// resolved by this name, so renaming them changes the check they run.
func (r *Rule) Named(name string) *Rule {
	c := r.clone()
	c.name = name
	return c
}

// WithMessage overrides the message template of every failure the rule
// reports, including failures of members of a Sequence, StopOnFirstError or
// Group. On Each and Nested rules it overrides the incorrect input message.
func (r *Rule) WithMessage(message string) *Rule {
	c := r.clone()
	switch c.kind {
	case KindEach, KindNested:
		c.incorrectInputMessage = message
	default:
		c.message = message
	}
	return c
}

// SkipOnEmpty skips the rule when the value is nil, an empty string or an
// empty slice, array or map.
func (r *Rule) SkipOnEmpty() *Rule {
	c := r.clone()
	c.skipEmpty = SkipAlways
	c.emptyFunc = nil
	return c
}

// NeverSkipOnEmpty evaluates the rule for empty values too, overriding
// group and validator defaults.
func (r *Rule) NeverSkipOnEmpty() *Rule {
	c := r.clone()
	c.skipEmpty = SkipNever
	c.emptyFunc = nil
	return c
}

// SkipOnEmptyFunc skips the rule when fn reports the value as empty.
func (r *Rule) SkipOnEmptyFunc(fn EmptyFunc) *Rule {
	c := r.clone()
	if fn == nil {
		c.err = errors.Join(ErrInvalidRule, errors.New("empty condition is nil"))
		return c
	}
	c.skipEmpty = SkipCustom
	c.emptyFunc = fn
	return c
}

// SkipOnError skips the rule when a previous rule of the same sequence failed.
func (r *Rule) SkipOnError() *Rule {
	return r.WithSkipOnError(true)
}

// WithSkipOnError sets skip-on-error explicitly, overriding group settings.
func (r *Rule) WithSkipOnError(skip bool) *Rule {
	c := r.clone()
	c.skipError = skip
	c.skipErrorSet = true
	return c
}

// When makes the rule apply only when fn returns true. A nil fn removes the condition.
func (r *Rule) When(fn WhenFunc) *Rule {
	c := r.clone()
	c.when = fn
	return c
}

func (r *Rule) clone() *Rule {
	c := *r
	return &c
}

// inherit fills unset modifiers from a group.
func (r *Rule) inherit(group *Rule) *Rule {
	if r == nil {
		return nil
	}
	if r.skipEmpty != SkipUnset && r.skipErrorSet {
		return r
	}
	c := r.clone()
	if c.skipEmpty == SkipUnset {
		c.skipEmpty = group.skipEmpty
		c.emptyFunc = group.emptyFunc
	}
	if !c.skipErrorSet {
		c.skipError = group.skipError
		c.skipErrorSet = group.skipErrorSet
	}
	return c
}
