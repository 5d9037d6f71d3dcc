package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/mistconv/pkg/model"
)

// Output encodings
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// OutputFormatFor picks the encoding from a file extension: YAML for
// .yaml and .yml, JSON otherwise.
func OutputFormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return OutputYAML
	}
	return OutputJSON
}

// EncodeTemplate writes t as indented JSON or as YAML. YAML output uses the
// JSON field names.
func EncodeTemplate(w io.Writer, t *model.MistTemplate, format string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}

	switch format {
	case OutputJSON, "":
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case OutputYAML:
		var doc interface{}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("encoding template: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toYAML(doc)); err != nil {
			return fmt.Errorf("encoding template: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// toYAML converts json.Number values so that yaml emits them as numbers.
func toYAML(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		for k, e := range x {
			x[k] = toYAML(e)
		}
		return x
	case []interface{}:
		for i, e := range x {
			x[i] = toYAML(e)
		}
		return x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		f, _ := x.Float64()
		return f
	}
	return v
}
