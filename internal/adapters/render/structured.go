package render

import (
	"context"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONRenderer writes the report as indented JSON.
type JSONRenderer struct{}

func (JSONRenderer) Format() string { return "json" }
func (JSONRenderer) Ext() string    { return "json" }

func (JSONRenderer) Render(_ context.Context, w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// YAMLRenderer writes the report as a YAML document.
type YAMLRenderer struct{}

func (YAMLRenderer) Format() string { return "yaml" }
func (YAMLRenderer) Ext() string    { return "yaml" }

func (YAMLRenderer) Render(_ context.Context, w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
