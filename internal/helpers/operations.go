package helpers

import (
	"slices"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/goliatone/go-stache/internal/grid"
)

const (
	operationsKey    = "operations"
	propertyKey      = "property"
	operationIDKey   = "id"
	azureAPISegment  = "/apis/"
	azureDocsSegment = "docs/services/"
)

// getOperation filters the site operations by every hash entry except
// property=. A single match is returned on its own, narrowed to property=
// when that field exists; several matches are returned as a list.
//
//	{{getOperation name="Address (Create)" property="description"}}
func (s *Set) getOperation(options *raymond.Options) any {
	raw, ok := s.site.Value(operationsKey)
	if !ok || raw == nil {
		return ""
	}

	hash := options.Hash()
	var matches []any
	for _, item := range toSlice(raw) {
		if operationMatches(item, hash) {
			matches = append(matches, item)
		}
	}

	var result any = matches
	if len(matches) == 1 {
		result = matches[0]
	}
	if property, ok := hash[propertyKey].(string); ok {
		if v, found := grid.FieldOf(result, property); found {
			result = v
		}
	}
	return result
}

func operationMatches(item any, hash map[string]any) bool {
	for key, want := range hash {
		if key == propertyKey {
			continue
		}
		got, ok := grid.FieldOf(item, key)
		if !ok || !containsValue(got, want) {
			return false
		}
	}
	return true
}

// containsValue is substring search for strings and membership for lists.
func containsValue(haystack, needle any) bool {
	if s, ok := haystack.(string); ok {
		return strings.Contains(s, raymond.Str(needle))
	}
	if list := toSlice(haystack); list != nil {
		return slices.ContainsFunc(list, func(v any) bool {
			return raymond.Str(v) == raymond.Str(needle)
		})
	}
	return false
}

// getOperationURI returns the id of the matched operation rewritten from the
// API path to the developer portal documentation path.
func (s *Set) getOperationURI(options *raymond.Options) string {
	op := s.getOperation(options)
	if !raymond.IsTrue(op) {
		return ""
	}
	return strings.Replace(fieldString(op, operationIDKey), azureAPISegment, azureDocsSegment, 1)
}

// withOperation renders its block with the result of getOperation.
func (s *Set) withOperation(options *raymond.Options) string {
	return options.FnWith(s.getOperation(options))
}
