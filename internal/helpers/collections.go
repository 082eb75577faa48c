package helpers

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/aymerick/raymond"

	"github.com/goliatone/go-stache/internal/grid"
)

func jsonHelper(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		fail(fmt.Errorf("json: %w", err))
	}
	return string(data)
}

// length counts slice, string and map entries, or exported struct fields.
func length(collection any) int {
	rv := reflect.ValueOf(collection)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String, reflect.Map:
		return rv.Len()
	case reflect.Struct:
		n := 0
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).IsExported() {
				n++
			}
		}
		return n
	}
	return 0
}

// withCoverageTotal sums the total, covered and skipped counters stored under
// property in every entry of an istanbul style report and renders its block
// with the totals, the percentage and a css class.
func withCoverageTotal(collection any, property string, options *raymond.Options) string {
	var total, covered, skipped int
	for _, entry := range entries(collection) {
		stats, ok := grid.FieldOf(entry, property)
		if !ok {
			continue
		}
		total += counter(stats, "total")
		covered += counter(stats, "covered")
		skipped += counter(stats, "skipped")
	}

	pct := 0.0
	if total > 0 {
		pct = float64(covered) / float64(total) * 100
	}

	cssClass := "success"
	switch {
	case pct < 50:
		cssClass = "danger"
	case pct < 80:
		cssClass = "warning"
	}

	var shown any = pct
	if fixed, ok := hashValue(options, "fixed"); ok && raymond.IsTrue(fixed) && pct != 100 {
		places, _ := toInt(fixed)
		shown = roundFixed(pct, places)
	}

	return options.FnWith(map[string]any{
		"total":    total,
		"covered":  covered,
		"skipped":  skipped,
		"pct":      shown,
		"cssClass": cssClass,
	})
}

func counter(stats any, key string) int {
	v, _ := grid.FieldOf(stats, key)
	n, _ := toFloat(v)
	return int(n)
}

// entries returns map values in key order, or slice elements in order.
func entries(collection any) []any {
	if m, ok := collection.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		out := make([]any, 0, len(keys))
		for _, key := range keys {
			out = append(out, m[key])
		}
		return out
	}
	return toSlice(collection)
}

// roundFixed rounds half away from zero to places decimals.
func roundFixed(value float64, places int) string {
	places = max(places, 0)
	scale := math.Pow(10, float64(places))
	return strconv.FormatFloat(math.Round(value*scale)/scale, 'f', places, 64)
}

// withFirstProperty renders its block with the value of the lexically first
// key of a map, or the first exported field of a struct.
func withFirstProperty(collection any, options *raymond.Options) string {
	if m, ok := collection.(map[string]any); ok {
		if len(m) == 0 {
			return ""
		}
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		return options.FnWith(m[slices.Min(keys)])
	}

	rv := reflect.ValueOf(collection)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return ""
	}
	for i := 0; i < rv.NumField(); i++ {
		if rv.Type().Field(i).IsExported() {
			return options.FnWith(rv.Field(i).Interface())
		}
	}
	return ""
}

// withItem renders its block with object[key].
func withItem(object any, options *raymond.Options) string {
	v, ok := grid.FieldOf(object, options.HashStr("key"))
	if !ok {
		return ""
	}
	return options.FnWith(v)
}

func isArray(item any, options *raymond.Options) string {
	kind := reflect.ValueOf(item).Kind()
	if kind == reflect.Slice || kind == reflect.Array {
		return options.Fn()
	}
	return options.Inverse()
}

// inherit resolves a setting that is on globally unless locally "false", and
// off globally unless locally truthy.
func inherit(globally, locally any, options *raymond.Options) string {
	var on bool
	if raymond.IsTrue(globally) {
		on = locally == nil || raymond.Str(locally) != "false"
	} else {
		on = raymond.IsTrue(locally)
	}
	if on {
		return options.Fn()
	}
	return options.Inverse()
}

// withinParentDepth always renders its block; sidebarParentDepth is accepted
// but not enforced yet.
func withinParentDepth(options *raymond.Options) string {
	return options.Fn()
}
