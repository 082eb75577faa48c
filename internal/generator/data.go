package generator

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stache/internal/nav"
)

const navLinksKey = "nav_links"

// loadSiteData decodes the YAML site data file. An empty path yields an empty
// document; nav_links is checked against the link schema.
func loadSiteData(fsys afero.Fs, path string) (map[string]any, error) {
	data := map[string]any{}
	path = strings.TrimSpace(path)
	if path == "" {
		return data, nil
	}

	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("generator: read site data %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("generator: decode site data %s: %w", path, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	if err := nav.Validate(data[navLinksKey]); err != nil {
		return nil, err
	}
	return data, nil
}
