package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// DefaultMaxDepth limits how deeply Each and Nested rules may nest.
const DefaultMaxDepth = 64

// Default messages for data that does not have the shape a rule expects.
const (
	MessageNotIterable     = "{Property} must be iterable."
	MessageIncorrectKey    = "Every iterable key of {Property} must have an integer or a string type."
	MessageNotStructured   = "{Property} must be an array or an object."
	MessagePathNotFound    = "Property \"{path}\" is not found."
	defaultWholeValueLabel = "value"
)

// Rules maps top-level property names to their rules.
// The empty name targets the whole input value.
type Rules map[string][]*Rule

// Validator evaluates rule trees. It holds no per-run state and is safe for
// concurrent use.
type Validator struct {
	registry    *Registry
	logger      *slog.Logger
	observers   []Observer
	skipOnEmpty SkipMode
	maxDepth    int
}

// Stats summarizes one Validate call.
type Stats struct {
	Properties int
	Errors     int
	Duration   time.Duration
	// Err is set when the run was aborted by a configuration error.
	Err error
}

// Observer is notified after every Validate call.
type Observer interface {
	ObserveValidation(ctx context.Context, stats Stats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, stats Stats)

func (f ObserverFunc) ObserveValidation(ctx context.Context, stats Stats) { f(ctx, stats) }

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry sets the registry used to resolve rules created with Use.
func WithRegistry(r *Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithObserver registers an observer of validation runs.
func WithObserver(o Observer) Option {
	return func(v *Validator) {
		if o != nil {
			v.observers = append(v.observers, o)
		}
	}
}

// WithDefaultSkipOnEmpty makes rules that do not set skip-on-empty
// themselves skip empty values.
func WithDefaultSkipOnEmpty(skip bool) Option {
	return func(v *Validator) {
		if skip {
			v.skipOnEmpty = SkipAlways
		} else {
			v.skipOnEmpty = SkipNever
		}
	}
}

// WithMaxDepth limits the nesting of Each and Nested rules. Non-positive values are ignored.
func WithMaxDepth(depth int) Option {
	return func(v *Validator) {
		if depth > 0 {
			v.maxDepth = depth
		}
	}
}

// WithConfig applies settings loaded with LoadConfig.
func WithConfig(cfg Config) Option {
	return func(v *Validator) {
		WithDefaultSkipOnEmpty(cfg.SkipOnEmpty)(v)
		WithMaxDepth(cfg.MaxDepth)(v)
	}
}

// New creates a Validator using the built-in checks.
func New(opts ...Option) *Validator {
	v := &Validator{
		registry:    DefaultRegistry(),
		logger:      logger.Discard(),
		skipOnEmpty: SkipNever,
		maxDepth:    DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate evaluates rules against data and collects every failure.
//
// data may be a DataSet, a map, a struct (or pointer to one) or a scalar.
// Properties are processed in sorted order. When rules is nil and data
// implements RulesProvider, the provided rules are used.
//
// A non-nil error means the rules or checks are misconfigured; it is never
// returned for data that merely fails validation.
//
// When logging is enabled, ctx is given a run id (see logger.WithRunID)
// unless it already carries one.
func (v *Validator) Validate(ctx context.Context, data any, rules Rules) (*Result, error) {
	start := time.Now()

	if _, ok := logger.RunID(ctx); !ok && v.logger.Enabled(ctx, slog.LevelError) {
		ctx = logger.WithRunID(ctx, uuid.NewString())
	}

	if rules == nil {
		if p, ok := data.(RulesProvider); ok {
			rules = p.ValidationRules()
		}
	}

	ds := NewDataSet(data)
	labels := labelsOf(data)
	result := &Result{}

	for _, property := range slices.Sorted(maps.Keys(rules)) {
		value := ds.Data()
		label := defaultWholeValueLabel
		if property != "" {
			value, _ = ds.Property(property)
			label = property
		}
		if l, ok := labels[property]; ok && l != "" {
			label = l
		}

		ec := &Context{
			ctx:       ctx,
			validator: v,
			root:      ds,
			dataSet:   ds,
			property:  property,
			label:     label,
		}

		out, err := v.evaluateSequence(value, rules[property], ec, false)
		if err != nil {
			v.logger.ErrorContext(ctx, "validation aborted",
				logger.Property(property),
				logger.Error(err),
			)
			err = fmt.Errorf("property %q: %w", property, err)
			v.notify(ctx, Stats{Properties: len(rules), Duration: time.Since(start), Err: err})
			return nil, err
		}
		result.add(property, out)
	}

	stats := Stats{Properties: len(rules), Errors: len(result.errors), Duration: time.Since(start)}
	v.logger.DebugContext(ctx, "validation completed",
		logger.PropertyCount(stats.Properties),
		logger.ErrorCount(stats.Errors),
		logger.Duration(stats.Duration),
	)
	v.notify(ctx, stats)

	return result, nil
}

func (v *Validator) notify(ctx context.Context, stats Stats) {
	for _, o := range v.observers {
		o.ObserveValidation(ctx, stats)
	}
}

// ValidateValue evaluates rules against a single value. Errors are filed
// under the empty property name.
func (v *Validator) ValidateValue(ctx context.Context, value any, rules ...*Rule) (*Result, error) {
	return v.Validate(ctx, NewSingleValueDataSet(value), Rules{"": rules})
}

// evaluate runs r against value. ran is false when a modifier skipped the
// rule; skipped rules are valid and leave sequence flags untouched.
func (v *Validator) evaluate(value any, r *Rule, ec *Context) (out Outcome, ran bool, err error) {
	if r == nil {
		return Outcome{}, false, ErrNilRule
	}
	if r.err != nil {
		return Outcome{}, false, r.err
	}
	if v.skip(value, r, ec) {
		return Valid(), false, nil
	}

	switch r.kind {
	case KindLeaf:
		out, err = v.evaluateLeaf(value, r, ec)
	case KindSequence:
		out, err = v.evaluateSequence(value, r.rules, ec, false)
		out = out.withMessage(r.message)
	case KindStopOnFirstError:
		out, err = v.evaluateSequence(value, r.rules, ec, true)
		out = out.withMessage(r.message)
	case KindGroup:
		members := make([]*Rule, len(r.rules))
		for i, m := range r.rules {
			members[i] = m.inherit(r)
		}
		out, err = v.evaluateSequence(value, members, ec, false)
		out = out.withMessage(r.message)
	case KindEach:
		out, err = v.evaluateEach(value, r, ec)
	case KindNested:
		out, err = v.evaluateNested(value, r, ec)
	default:
		err = errors.Join(ErrUnknownKind, fmt.Errorf("kind %d", r.kind))
	}
	return out, true, err
}

// skip applies the universal modifiers in order: emptiness, previous
// failure, then the when condition.
func (v *Validator) skip(value any, r *Rule, ec *Context) bool {
	mode := r.skipEmpty
	if mode == SkipUnset {
		mode = v.skipOnEmpty
	}
	switch mode {
	case SkipAlways:
		if IsEmpty(value) {
			return true
		}
	case SkipCustom:
		if r.emptyFunc(value) {
			return true
		}
	}

	if r.skipError && ec.PreviousRuleErrored() {
		return true
	}

	if r.when != nil && !r.when(value, ec) {
		return true
	}

	return false
}

func (v *Validator) evaluateLeaf(value any, r *Rule, ec *Context) (Outcome, error) {
	check := r.check
	if check == nil {
		resolved, err := v.registry.Resolve(r.name)
		if err != nil {
			return Outcome{}, err
		}
		check = resolved
	}

	failures, err := check.Check(value, r.params, ec)
	if err != nil {
		v.logger.DebugContext(ec.Context(), "check returned an error",
			logger.Check(r.name),
			logger.Property(ec.Property()),
			logger.Error(err),
		)
		return Outcome{}, errors.Join(ErrCheckFailed, fmt.Errorf("check %q: %w", r.name, err))
	}
	if len(failures) == 0 {
		return Valid(), nil
	}

	items := make([]ErrorItem, len(failures))
	for i, f := range failures {
		message := f.Message
		if r.message != "" {
			message = r.message
		}
		items[i] = ErrorItem{Message: message, Params: withLabel(f.Params, ec.Label())}
	}
	return Invalid(items...), nil
}

// evaluateSequence runs rules in order with a fresh previous-rule-errored
// flag. Once a member fails the flag stays set for the remaining members.
func (v *Validator) evaluateSequence(value any, rules []*Rule, ec *Context, stopOnFirst bool) (Outcome, error) {
	running := ec.WithFlag(FlagPreviousRuleErrored, false)
	out := Valid()

	for _, member := range rules {
		res, ran, err := v.evaluate(value, member, running)
		if err != nil {
			return Outcome{}, err
		}
		if !ran || res.IsValid() {
			continue
		}

		out = out.merge(res)
		if stopOnFirst {
			break
		}
		if !running.PreviousRuleErrored() {
			running = running.WithFlag(FlagPreviousRuleErrored, true)
		}
	}

	return out, nil
}

func (v *Validator) evaluateEach(value any, r *Rule, ec *Context) (Outcome, error) {
	items, ok := iterate(value)
	if !ok {
		return v.shapeError(r.incorrectInputMessage, MessageNotIterable, ec, map[string]any{
			"type": typeName(value),
		}), nil
	}
	if ec.depth >= v.maxDepth {
		return Outcome{}, ErrMaxDepthExceeded
	}

	child := ec.descend(ec.dataSet)
	out := Valid()
	for _, it := range items {
		key, ok := normalizeKey(it.key)
		if !ok {
			return v.shapeError(r.incorrectKeyMessage, MessageIncorrectKey, ec, map[string]any{
				"type": typeName(it.key),
			}), nil
		}

		res, err := v.evaluateSequence(it.value, r.rules, child, false)
		if err != nil {
			return Outcome{}, err
		}
		out = out.merge(res.prefixed(key))
	}

	return out, nil
}

func (v *Validator) evaluateNested(value any, r *Rule, ec *Context) (Outcome, error) {
	if !isStructured(value) {
		return v.shapeError(r.incorrectInputMessage, MessageNotStructured, ec, map[string]any{
			"type": typeName(value),
		}), nil
	}
	if ec.depth >= v.maxDepth {
		return Outcome{}, ErrMaxDepthExceeded
	}

	fields := r.fields
	if len(fields) == 0 {
		p, ok := value.(RulesProvider)
		if !ok {
			return Outcome{}, errors.Join(ErrInvalidRule,
				fmt.Errorf("nested rule has no fields and %s does not provide rules", typeName(value)))
		}
		fields = providedFields(p.ValidationRules())
	}

	child := ec.descend(NewDataSet(value))
	labels := labelsOf(value)
	out := Valid()

	for _, f := range fields {
		path := make(Path, len(f.segs))
		for i, s := range f.segs {
			path[i] = s
		}

		sub, found := lookup(value, f.segs)
		if !found && r.requirePath {
			message := r.noPathMessage
			if message == "" {
				message = MessagePathNotFound
			}
			out = out.merge(Invalid(ErrorItem{
				Message: message,
				Params:  withLabel(map[string]any{"path": f.path}, ec.Label()),
				Path:    path,
			}))
			continue
		}

		label := f.path
		if l, ok := labels[f.path]; ok && l != "" {
			label = l
		}

		res, err := v.evaluateSequence(sub, f.rules, child.WithLabel(label), false)
		if err != nil {
			return Outcome{}, err
		}
		out = out.merge(res.prefixed(path...))
	}

	return out, nil
}

func (v *Validator) shapeError(custom, fallback string, ec *Context, params map[string]any) Outcome {
	message := custom
	if message == "" {
		message = fallback
	}
	return Invalid(ErrorItem{Message: message, Params: withLabel(params, ec.Label())})
}

func providedFields(rules Rules) []nestedField {
	fields := make([]Field, 0, len(rules))
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		fields = append(fields, On(name, rules[name]...))
	}
	return expandFields(fields)
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
