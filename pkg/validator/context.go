package validator

import (
	"context"
	"maps"
)

// FlagPreviousRuleErrored is set on the running context of a sequence once
// one of its members has failed. Rules marked SkipOnError read it.
const FlagPreviousRuleErrored = "previous_rule_errored"

// Context is the state threaded through one validation run.
// It is never modified in place: the With* methods return a copy, so
// sibling branches of a rule tree cannot see each other's flags.
type Context struct {
	ctx       context.Context
	validator *Validator
	root      DataSet
	dataSet   DataSet
	property  string
	label     string
	flags     map[string]any
	depth     int
}

// Context returns the context.Context passed to Validate. Checks that
// perform I/O should use it.
func (c *Context) Context() context.Context {
	return c.ctx
}

// DataSet returns the data set of the innermost structured value being
// validated. Inside a Nested rule this is the nested value.
func (c *Context) DataSet() DataSet {
	return c.dataSet
}

// RootDataSet returns the data set built from the input of Validate.
func (c *Context) RootDataSet() DataSet {
	return c.root
}

// Property returns the top-level property being validated.
func (c *Context) Property() string {
	return c.property
}

// Label returns the human-readable name of the value being validated.
func (c *Context) Label() string {
	return c.label
}

// Depth returns how many Each and Nested rules enclose the current rule.
func (c *Context) Depth() int {
	return c.depth
}

// Flag returns the value of a named flag.
func (c *Context) Flag(name string) (any, bool) {
	v, ok := c.flags[name]
	return v, ok
}

// PreviousRuleErrored reports whether an earlier member of the current
// sequence failed.
func (c *Context) PreviousRuleErrored() bool {
	b, _ := c.flags[FlagPreviousRuleErrored].(bool)
	return b
}

// WithLabel returns a copy of c with a different label.
func (c *Context) WithLabel(label string) *Context {
	n := c.clone()
	n.label = label
	return n
}

// WithFlag returns a copy of c with the flag set.
func (c *Context) WithFlag(name string, value any) *Context {
	n := c.clone()
	n.flags = maps.Clone(c.flags)
	if n.flags == nil {
		n.flags = make(map[string]any, 1)
	}
	n.flags[name] = value
	return n
}

// Validate evaluates rules as a sequence against value using the same
// validator, data set and label. Checks use it to validate parts of a
// value with other rules.
func (c *Context) Validate(value any, rules ...*Rule) (Outcome, error) {
	if c.depth >= c.validator.maxDepth {
		return Outcome{}, ErrMaxDepthExceeded
	}
	return c.validator.evaluateSequence(value, rules, c.descend(c.dataSet), false)
}

func (c *Context) clone() *Context {
	n := *c
	return &n
}

// descend returns a copy for evaluating a child value one level deeper.
func (c *Context) descend(ds DataSet) *Context {
	n := c.clone()
	n.dataSet = ds
	n.depth++
	return n
}
