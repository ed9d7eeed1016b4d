// Package validator evaluates declarative rule trees against arbitrary data
// and reports every failure together with its structural path.
//
// Rules are immutable values built from a small set of node kinds:
//
//   - Leaf              – a single Check with static parameters (Required, Length, Email, ...)
//   - Sequence          – applies members in order and keeps every failure
//   - StopOnFirstError  – applies members in order until one fails
//   - Each              – applies members to every element of an iterable value
//   - Nested            – applies members to sub-paths of a map, struct or slice
//   - Group             – bundles members under one set of modifiers
//
// Every rule supports three modifiers, checked in this order before the rule
// runs: SkipOnEmpty (or SkipOnEmptyFunc), SkipOnError and When. A skipped
// rule is valid and does not change the "previous rule errored" flag of the
// sequence it belongs to.
//
// # Usage
//
//	v := validator.New()
//
//	res, err := v.Validate(ctx, input, validator.Rules{
//	    "email": {validator.Required(), validator.Email().SkipOnError()},
//	    "items": {
//	        validator.Each(validator.Nested(
//	            validator.On("name", validator.Required(), validator.MaxLength(64)),
//	            validator.On("qty", validator.Integer(), validator.Min(1)),
//	        )),
//	    },
//	})
//	if err != nil {
//	    // misconfigured rules or a failing external check
//	}
//	if !res.IsValid() {
//	    for path, messages := range res.MessagesIndexedByPath(nil) {
//	        // "items.1.qty" => ["Qty must be no less than 1."]
//	    }
//	}
//
// Nested paths are dot separated. A "*" segment is a shortcut for Each, so
// On("items.*.name", ...) is the same as Each(Nested(On("name", ...))) on
// "items". Escape literal dots and stars with a backslash.
//
// # Checks
//
// Leaf rules delegate to a Check. Built-in checks are registered in
// DefaultRegistry under their names and can be referenced with Use, which
// lets custom checks be swapped in per validator with WithRegistry. Tag runs
// go-playground/validator tags for anything the built-ins do not cover.
//
// # Messages
//
// Failures carry an English message template with {name} placeholders and
// the parameters to fill them. The engine adds {property} and {Property}
// (the label of the value, upper-cased first letter). Templates are rendered
// only when asked for, with DefaultFormatter or any MessageFormatter such as
// a translator from pkg/i18n.
//
// # Error Handling
//
// Data that fails validation never produces a Go error: it ends up in the
// Result. Validate returns an error only for misconfiguration (ErrNilRule,
// ErrInvalidRule, ErrUnknownCheck, ErrMaxDepthExceeded) or when a check
// itself fails (ErrCheckFailed); no partial Result is returned then.
// Result.Err converts failures into ValidationErrors for callers that
// prefer an error value.
//
// # Observers
//
// WithObserver registers an Observer that receives Stats after every
// Validate call, including aborted ones. pkg/metrics provides a Prometheus
// implementation.
package validator
