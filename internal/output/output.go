// Package output serializes conversion results for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/urlmark/urlmark/pkg/reader"
)

// Format represents output format types.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Write serializes result to w in the requested format. The markdown format
// writes only the Markdown body, for piping into files or pagers.
func Write(w io.Writer, result *reader.Result, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(result)
	case FormatMarkdown:
		_, err := fmt.Fprintln(w, result.Markdown)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
