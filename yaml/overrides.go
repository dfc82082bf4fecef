package yaml

import (
	"os"
	"strings"

	"github.com/fwojciec/herbarium"
	goyaml "gopkg.in/yaml.v3"
)

// LoadOverrides reads a YAML mapping of localized product titles to
// baseline slugs, used to resolve records the matching cascade cannot.
// Keys are lower-cased and trimmed so lookups are case-insensitive.
func LoadOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, herbarium.Errorf(herbarium.ENOTFOUND, "overrides file %q does not exist", path)
	} else if err != nil {
		return nil, err
	}

	var raw map[string]string
	if err := goyaml.Unmarshal(data, &raw); err != nil {
		return nil, herbarium.Errorf(herbarium.EUNPROCESSABLE, "decoding overrides %q: %v", path, err)
	}

	overrides := make(map[string]string, len(raw))
	for title, slug := range raw {
		overrides[strings.ToLower(strings.TrimSpace(title))] = herbarium.Slugify(slug)
	}
	return overrides, nil
}
