package export

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/choropleth-cli/internal/theme"
)

// WriteStyleYAML writes a style as a YAML document for hand-editing or
// sharing outside the style library.
func WriteStyleYAML(style theme.Style, path string) error {
	data, err := yaml.Marshal(style)
	if err != nil {
		return eris.Wrap(err, "export: marshal style yaml")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}

// ReadStyleYAML loads a YAML style document. Missing keys keep their
// defaults.
func ReadStyleYAML(path string) (theme.Style, error) {
	s := theme.DefaultStyle()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, eris.Wrapf(err, "export: read %s", path)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, eris.Wrapf(err, "export: parse %s", path)
	}
	return s, nil
}
