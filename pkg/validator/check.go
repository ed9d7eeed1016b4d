package validator

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Params holds the static parameters of a leaf rule.
type Params map[string]any

// Get returns the raw parameter value.
func (p Params) Get(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}

// String returns the parameter as a string, or "" when absent or not a string.
func (p Params) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Bool returns the parameter as a bool, or false when absent or not a bool.
func (p Params) Bool(name string) bool {
	b, _ := p[name].(bool)
	return b
}

// Int returns the parameter converted to int.
func (p Params) Int(name string) (int, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Float returns the parameter converted to float64.
func (p Params) Float(name string) (float64, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Failure is a single message produced by a failing check.
type Failure struct {
	Message string
	Params  map[string]any
}

// Fail is a shorthand for a check result holding one failure.
func Fail(message string, params map[string]any) []Failure {
	return []Failure{{Message: message, Params: params}}
}

// Check is a single-value predicate used by leaf rules.
// It returns no failures when the value passes. A non-nil error means the
// check itself could not run and aborts the whole validation.
// Implementations must not modify the data set exposed by ec.
type Check interface {
	Check(value any, params Params, ec *Context) ([]Failure, error)
}

// CheckFunc adapts an ordinary function to the Check interface.
type CheckFunc func(value any, params Params, ec *Context) ([]Failure, error)

// Check calls f(value, params, ec).
func (f CheckFunc) Check(value any, params Params, ec *Context) ([]Failure, error) {
	return f(value, params, ec)
}

// Callback creates a leaf rule from fn. It is the escape hatch for checks
// that need no static parameters.
func Callback(fn func(value any, ec *Context) ([]Failure, error)) *Rule {
	if fn == nil {
		return invalidRule(KindLeaf, "callback function is nil")
	}
	return newLeaf("callback", CheckFunc(func(value any, _ Params, ec *Context) ([]Failure, error) {
		return fn(value, ec)
	}), nil)
}

// Registry maps check names to implementations for rules created with Use.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{checks: make(map[string]Check)}
}

// DefaultRegistry creates a registry holding every built-in check.
// Each call returns an independent registry.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	maps.Copy(r.checks, builtinChecks())
	return r
}

// Register adds or replaces the check stored under name.
func (r *Registry) Register(name string, check Check) error {
	if name == "" {
		return errors.Join(ErrInvalidCheck, errors.New("empty check name"))
	}
	if check == nil {
		return errors.Join(ErrInvalidCheck, fmt.Errorf("check %q is nil", name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = check
	return nil
}

// Resolve returns the check registered under name.
func (r *Registry) Resolve(name string) (Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	check, ok := r.checks[name]
	if !ok {
		return nil, errors.Join(ErrUnknownCheck, fmt.Errorf("check %q is not registered", name))
	}
	return check, nil
}

// Names returns the registered check names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.checks))
}

func builtinChecks() map[string]Check {
	return map[string]Check{
		"required": CheckFunc(checkRequired),
		"length":   CheckFunc(checkLength),
		"number":   CheckFunc(checkNumber),
		"integer":  CheckFunc(checkInteger),
		"in":       CheckFunc(checkIn),
		"regex":    CheckFunc(checkRegex),
		"email":    CheckFunc(checkEmail),
		"url":      CheckFunc(checkURL),
		"ip":       CheckFunc(checkIP),
		"phone":    CheckFunc(checkPhone),
		"uuid":     CheckFunc(checkUUID),
		"compare":  CheckFunc(checkCompare),
		"count":    CheckFunc(checkCount),
		"date":     CheckFunc(checkDate),
		"tag":      CheckFunc(checkTag),
	}
}
