package cli

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/aisw/internal/errors"
)

// Format selects how a command renders its result.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves the --json and --yaml flags.
func ParseFormat(jsonFlag, yamlFlag bool) (Format, error) {
	switch {
	case jsonFlag && yamlFlag:
		return "", errors.NewUserError(errors.New("--json and --yaml are mutually exclusive"), "")
	case jsonFlag:
		return FormatJSON, nil
	case yamlFlag:
		return FormatYAML, nil
	default:
		return FormatText, nil
	}
}

// Encode writes v as indented JSON or as YAML. FormatText is rejected;
// text output is rendered by each command.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encoding JSON")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	default:
		return errors.Newf("format %q cannot be encoded", f)
	}
}
