package validator

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Iterable is implemented by custom collections that Each can walk.
// Keys must be strings or integers.
type Iterable interface {
	All() iter.Seq2[any, any]
}

type item struct {
	key   any
	value any
}

// lookup walks segs into value and reports whether every segment exists.
func lookup(value any, segs []string) (any, bool) {
	current := value
	for _, seg := range segs {
		next, ok := child(current, seg)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// child returns the value stored under key in a map, struct, slice, array or DataSet.
func child(value any, key string) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		x, ok := v[key]
		return x, ok
	case DataSet:
		return v.Property(key)
	}

	rv := indirect(reflect.ValueOf(value))
	if !rv.IsValid() {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Map:
		return mapIndex(rv, key)
	case reflect.Struct:
		idx, ok := structFieldIndex(rv.Type(), key)
		if !ok {
			return nil, false
		}
		f, err := rv.FieldByIndexErr(idx)
		if err != nil {
			return nil, false
		}
		return f.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

func mapIndex(rv reflect.Value, key string) (any, bool) {
	kt := rv.Type().Key()
	candidates := make([]reflect.Value, 0, 2)

	switch {
	case kt.Kind() == reflect.String:
		candidates = append(candidates, reflect.ValueOf(key).Convert(kt))
	case kt.Kind() == reflect.Interface:
		candidates = append(candidates, reflect.ValueOf(key))
		if n, err := strconv.Atoi(key); err == nil {
			candidates = append(candidates, reflect.ValueOf(n))
		}
	case isIntKind(kt.Kind()):
		n, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, false
		}
		candidates = append(candidates, reflect.ValueOf(n).Convert(kt))
	case isUintKind(kt.Kind()):
		n, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, false
		}
		candidates = append(candidates, reflect.ValueOf(n).Convert(kt))
	default:
		return nil, false
	}

	for _, k := range candidates {
		if v := rv.MapIndex(k); v.IsValid() {
			return v.Interface(), true
		}
	}
	return nil, false
}

// isStructured reports whether value can be addressed by path segments.
func isStructured(value any) bool {
	if _, ok := value.(DataSet); ok {
		return true
	}
	rv := indirect(reflect.ValueOf(value))
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// iterate collects the key/value pairs of an iterable value in iteration
// order: index order for slices and arrays, sorted key order for maps.
// The second result is false when the value cannot be iterated.
func iterate(value any) ([]item, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		items := make([]item, len(v))
		for i, x := range v {
			items[i] = item{key: i, value: x}
		}
		return items, true
	case Iterable:
		return collect(v.All()), true
	case iter.Seq2[any, any]:
		return collect(v), true
	case iter.Seq2[string, any]:
		var items []item
		for k, x := range v {
			items = append(items, item{key: k, value: x})
		}
		return items, true
	case iter.Seq2[int, any]:
		var items []item
		for k, x := range v {
			items = append(items, item{key: k, value: x})
		}
		return items, true
	case iter.Seq[any]:
		var items []item
		for x := range v {
			items = append(items, item{key: len(items), value: x})
		}
		return items, true
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]item, rv.Len())
		for i := range rv.Len() {
			items[i] = item{key: i, value: rv.Index(i).Interface()}
		}
		return items, true
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, compareKeys)
		items := make([]item, len(keys))
		for i, k := range keys {
			items[i] = item{key: k.Interface(), value: rv.MapIndex(k).Interface()}
		}
		return items, true
	}
	return nil, false
}

func collect(seq iter.Seq2[any, any]) []item {
	var items []item
	for k, v := range seq {
		items = append(items, item{key: k, value: v})
	}
	return items
}

// normalizeKey converts integer kinds to int and string kinds to string.
func normalizeKey(key any) (any, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case string:
		return k, true
	}

	rv := reflect.ValueOf(key)
	switch {
	case !rv.IsValid():
		return nil, false
	case rv.Kind() == reflect.String:
		return rv.String(), true
	case isIntKind(rv.Kind()):
		return int(rv.Int()), true
	case isUintKind(rv.Kind()):
		return int(rv.Uint()), true
	}
	return nil, false
}

// compareKeys orders integers numerically before strings, and anything
// else by its printed form.
func compareKeys(a, b reflect.Value) int {
	a, b = indirect(a), indirect(b)
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		return cmp.Compare(a.Int(), b.Int())
	case 1:
		return cmp.Compare(a.Uint(), b.Uint())
	case 2:
		return strings.Compare(a.String(), b.String())
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func keyRank(v reflect.Value) int {
	switch {
	case !v.IsValid():
		return 3
	case isIntKind(v.Kind()):
		return 0
	case isUintKind(v.Kind()):
		return 1
	case v.Kind() == reflect.String:
		return 2
	}
	return 3
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

var structFieldCache sync.Map // reflect.Type -> map[string][]int

// structFieldIndex resolves a property name to a struct field.
// A json tag name wins over the Go field name.
func structFieldIndex(t reflect.Type, name string) ([]int, bool) {
	cached, ok := structFieldCache.Load(t)
	if !ok {
		cached, _ = structFieldCache.LoadOrStore(t, buildFieldIndex(t))
	}
	idx, ok := cached.(map[string][]int)[name]
	return idx, ok
}

func buildFieldIndex(t reflect.Type) map[string][]int {
	byTag := make(map[string][]int)
	byName := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		if _, ok := byName[f.Name]; !ok {
			byName[f.Name] = f.Index
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag != "" && tag != "-" {
			if _, ok := byTag[tag]; !ok {
				byTag[tag] = f.Index
			}
		}
	}
	for name, idx := range byName {
		if _, ok := byTag[name]; !ok {
			byTag[name] = idx
		}
	}
	return byTag
}
