package grid

import (
	"cmp"
	"maps"
	"reflect"
	"strings"
	"time"

	"dario.cat/mergo"
)

// FieldOf reads key from a map or struct item. Struct fields match
// case-insensitively so "showInNav" finds ShowInNav.
func FieldOf(item any, key string) (any, bool) {
	switch v := item.(type) {
	case nil:
		return nil, false
	case map[string]any:
		value, ok := v[key]
		return value, ok
	case map[string]string:
		value, ok := v[key]
		return value, ok
	}

	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	field := rv.FieldByNameFunc(func(name string) bool {
		return strings.EqualFold(name, key)
	})
	if !field.IsValid() || !field.CanInterface() {
		return nil, false
	}
	return field.Interface(), true
}

// Decorate returns a new template context holding the item's fields plus the
// layout metadata. Metadata keys win on collision. Non map, non struct items
// are exposed as "item".
func Decorate(item any, meta Meta) map[string]any {
	out := map[string]any{}
	switch v := item.(type) {
	case map[string]any:
		maps.Copy(out, v)
	default:
		if isStruct(item) {
			if err := mergo.Map(&out, item); err != nil {
				out["item"] = item
			}
		} else if item != nil {
			out["item"] = item
		}
	}
	maps.Copy(out, meta.Map())
	return out
}

// Compare orders two field values naturally: numbers numerically, strings
// lexically, false before true, times chronologically. Values of different
// or unsupported kinds compare equal, which keeps them in source order under
// a stable sort.
func Compare(a, b any) int {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
		return 0
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return 0
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func isStruct(item any) bool {
	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct
}
