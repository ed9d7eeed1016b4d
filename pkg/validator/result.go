package validator

import (
	"slices"
)

// Error is a failure filed under a top-level property.
// Path is relative to the property.
type Error struct {
	Property string
	Message  string
	Params   map[string]any
	Path     Path
}

// FullPath returns the property followed by the relative path.
func (e Error) FullPath() Path {
	if e.Property == "" {
		return slices.Clone(e.Path)
	}
	return e.Path.Prefixed(e.Property)
}

// Render formats the message with f, or DefaultFormatter when f is nil.
func (e Error) Render(f MessageFormatter) string {
	if f == nil {
		f = DefaultFormatter
	}
	return f.Format(e.Message, e.Params)
}

// Result is the outcome of one Validate call.
type Result struct {
	errors []Error
}

// IsValid reports whether no property has an error.
func (r *Result) IsValid() bool {
	return len(r.errors) == 0
}

// Errors returns all errors in evaluation order.
func (r *Result) Errors() []Error {
	return slices.Clone(r.errors)
}

// Properties returns the properties with at least one error, in evaluation order.
func (r *Result) Properties() []string {
	var props []string
	for _, e := range r.errors {
		if !slices.Contains(props, e.Property) {
			props = append(props, e.Property)
		}
	}
	return props
}

// Has reports whether property has at least one error.
func (r *Result) Has(property string) bool {
	return slices.ContainsFunc(r.errors, func(e Error) bool { return e.Property == property })
}

// PropertyErrors returns the errors filed under property.
func (r *Result) PropertyErrors(property string) []Error {
	var out []Error
	for _, e := range r.errors {
		if e.Property == property {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first error.
func (r *Result) First() (Error, bool) {
	if len(r.errors) == 0 {
		return Error{}, false
	}
	return r.errors[0], true
}

// Messages renders every error message with f.
func (r *Result) Messages(f MessageFormatter) []string {
	out := make([]string, len(r.errors))
	for i, e := range r.errors {
		out[i] = e.Render(f)
	}
	return out
}

// PropertyMessages renders the messages filed under property with f.
func (r *Result) PropertyMessages(property string, f MessageFormatter) []string {
	var out []string
	for _, e := range r.errors {
		if e.Property == property {
			out = append(out, e.Render(f))
		}
	}
	return out
}

// MessagesIndexedByPath groups rendered messages by full dotted path.
func (r *Result) MessagesIndexedByPath(f MessageFormatter) map[string][]string {
	out := make(map[string][]string)
	for _, e := range r.errors {
		key := e.FullPath().String()
		out[key] = append(out[key], e.Render(f))
	}
	return out
}

// Err returns nil for a valid result and ValidationErrors otherwise.
func (r *Result) Err(f MessageFormatter) error {
	if r.IsValid() {
		return nil
	}

	errs := make(ValidationErrors, 0, len(r.errors))
	for _, e := range r.errors {
		path := e.FullPath()
		errs.Add(ValidationError{
			Field:             path.String(),
			Path:              path,
			Message:           e.Render(f),
			TranslationKey:    e.Message,
			TranslationValues: e.Params,
		})
	}
	return errs
}

func (r *Result) add(property string, out Outcome) {
	for _, item := range out.items {
		r.errors = append(r.errors, Error{
			Property: property,
			Message:  item.Message,
			Params:   item.Params,
			Path:     item.Path,
		})
	}
}
