package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-stache/pkg/interfaces"
)

// ParseFrontMatter splits source into its metadata block and body. Sources
// without front matter return an empty FrontMatter and the full source.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	raw := normalizeMap(meta)
	fm := interfaces.FrontMatter{Raw: raw}
	fm.Title, _ = raw["title"].(string)
	fm.Template, _ = raw["template"].(string)
	fm.Draft, _ = raw["draft"].(bool)
	return fm, body, nil
}

// normalizeMap converts the map[any]any values produced by YAML decoding into
// map[string]any so front matter can be merged into template contexts.
func normalizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
