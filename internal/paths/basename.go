// Package paths normalizes page destinations and link URIs so they can be
// compared regardless of extension, index page naming, or build prefix.
package paths

import "strings"

const indexToken = "index"

// Normalizer strips the configured build-output prefix while normalizing.
type Normalizer struct {
	buildPrefix string
}

// NewNormalizer returns a Normalizer removing buildPrefix (e.g. "build/").
func NewNormalizer(buildPrefix string) Normalizer {
	return Normalizer{buildPrefix: buildPrefix}
}

// Basename normalizes path with cleaning enabled.
func (n Normalizer) Basename(path string) string {
	return n.BasenameClean(path, true)
}

// BasenameClean reduces path to its comparable form:
//
//   - everything from the last "." is dropped
//   - the first "index" anywhere in what remains is removed
//   - the build prefix is removed once
//   - one leading and one trailing "/" are trimmed
//
// It returns "" when clean is false or path is empty. The "index" removal is
// not directory aware: "docs/indexing" becomes "docs/ing".
func (n Normalizer) BasenameClean(path string, clean bool) string {
	if !clean || path == "" {
		return ""
	}

	if dot := strings.LastIndex(path, "."); dot != -1 {
		path = path[:dot]
	}

	path = strings.Replace(path, indexToken, "", 1)

	if n.buildPrefix != "" {
		path = strings.Replace(path, n.buildPrefix, "", 1)
	}

	return TrimSlashes(path)
}

// TrimSlashes removes a single leading and a single trailing "/".
func TrimSlashes(path string) string {
	path = strings.TrimPrefix(path, "/")
	return strings.TrimSuffix(path, "/")
}

// RemoveExt drops the extension of filename, if any.
func RemoveExt(filename string) string {
	if dot := strings.LastIndex(filename, "."); dot > -1 {
		return filename[:dot]
	}
	return filename
}

// Dir returns everything before the last "/" of a slash separated path, or
// "" when there is none.
func Dir(path string) string {
	if slash := strings.LastIndex(path, "/"); slash != -1 {
		return path[:slash]
	}
	return ""
}
