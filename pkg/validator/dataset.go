package validator

import (
	"reflect"
)

// DataSet is the keyed view of the data under validation.
// Checks reach sibling values through Context.DataSet.
type DataSet interface {
	// Property returns the value stored under name and whether it exists.
	Property(name string) (any, bool)
	// Data returns the raw data the set was built from.
	Data() any
}

// RulesProvider is implemented by values that carry their own rules.
// Validate uses them when called with nil rules, and Nested rules without
// fields use them for the nested value.
type RulesProvider interface {
	ValidationRules() Rules
}

// LabelsProvider supplies human-readable property names used for the
// {property} message parameter.
type LabelsProvider interface {
	ValidationLabels() map[string]string
}

// MapDataSet is a DataSet backed by a string-keyed map.
type MapDataSet map[string]any

func (m MapDataSet) Property(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m MapDataSet) Data() any {
	return map[string]any(m)
}

// ObjectDataSet exposes the fields of a struct, or the entries of any map,
// as properties. Struct properties are addressed by json tag name or by
// Go field name.
type ObjectDataSet struct {
	object any
}

// NewObjectDataSet wraps object. Pointers are followed on access.
func NewObjectDataSet(object any) *ObjectDataSet {
	return &ObjectDataSet{object: object}
}

func (d *ObjectDataSet) Property(name string) (any, bool) {
	return child(d.object, name)
}

func (d *ObjectDataSet) Data() any {
	return d.object
}

// SingleValueDataSet wraps a scalar. It has no properties.
type SingleValueDataSet struct {
	value any
}

// NewSingleValueDataSet wraps value.
func NewSingleValueDataSet(value any) *SingleValueDataSet {
	return &SingleValueDataSet{value: value}
}

func (d *SingleValueDataSet) Property(string) (any, bool) {
	return nil, false
}

func (d *SingleValueDataSet) Data() any {
	return d.value
}

// NewDataSet normalizes arbitrary input into a DataSet: DataSet values are
// returned as is, string-keyed maps become a MapDataSet, other maps and
// structs an ObjectDataSet, and everything else a SingleValueDataSet.
func NewDataSet(data any) DataSet {
	switch d := data.(type) {
	case DataSet:
		return d
	case map[string]any:
		return MapDataSet(d)
	}

	rv := indirect(reflect.ValueOf(data))
	if rv.IsValid() && (rv.Kind() == reflect.Map || rv.Kind() == reflect.Struct) {
		return NewObjectDataSet(data)
	}
	return NewSingleValueDataSet(data)
}

// HasProperty reports whether ds holds a value under name.
func HasProperty(ds DataSet, name string) bool {
	_, ok := ds.Property(name)
	return ok
}

func labelsOf(data any) map[string]string {
	if p, ok := data.(LabelsProvider); ok {
		return p.ValidationLabels()
	}
	if ds, ok := data.(DataSet); ok {
		if p, ok := ds.Data().(LabelsProvider); ok {
			return p.ValidationLabels()
		}
	}
	return nil
}
