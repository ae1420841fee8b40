// Package render formats assessment reports for output.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Renderer formats a Report into bytes for output.
type Renderer interface {
	Render(report *schema.Report) ([]byte, error)
}

// Formats lists the supported output formats.
var Formats = []string{"json", "md", "yaml"}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json" (default), "md", "yaml".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	case "yaml":
		return &yamlRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are json, md, yaml", format)
	}
}

type jsonRenderer struct{}

func (r *jsonRenderer) Render(report *schema.Report) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("rendering json: %w", err)
	}
	return append(out, '\n'), nil
}

// yamlRenderer emits the JSON field names, so both formats share one
// document shape.
type yamlRenderer struct{}

func (r *yamlRenderer) Render(report *schema.Report) ([]byte, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("rendering yaml: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("rendering yaml: %w", err)
	}
	plain(&doc)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("rendering yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("rendering yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// plain clears the flow and quoting styles carried over from JSON so the
// encoder picks block style and quotes only where needed.
func plain(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plain(c)
	}
}
