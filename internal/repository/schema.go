package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	yaml "go.yaml.in/yaml/v3"
)

const metricsSchemaURL = "mem://fraudboard/performance_metrics.schema.json"

const metricsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["best_threshold", "recall", "precision", "f1_score"],
  "properties": {
    "best_threshold": {"$ref": "#/$defs/unit"},
    "recall":         {"$ref": "#/$defs/unit"},
    "precision":      {"$ref": "#/$defs/unit"},
    "f1_score":       {"$ref": "#/$defs/unit"}
  },
  "$defs": {
    "unit": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`

const curveSchemaURL = "mem://fraudboard/pr_curve_data.schema.json"

const curveSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["recall", "precision"],
  "properties": {
    "recall":    {"$ref": "#/$defs/series"},
    "precision": {"$ref": "#/$defs/series"}
  },
  "$defs": {
    "series": {
      "type": "array",
      "items": {"type": "number", "minimum": 0, "maximum": 1}
    }
  }
}`

var (
	metricsDocSchema = mustCompile(metricsSchemaURL, metricsSchema)
	curveDocSchema   = mustCompile(curveSchemaURL, curveSchema)
)

func mustCompile(url, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("add schema resource %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// normalize turns the artifact bytes into canonical JSON. Names ending in
// .yaml/.yml are decoded as YAML first; everything else must be JSON.
func normalize(name string, raw []byte) ([]byte, any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil, errors.New("document is empty")
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("decode yaml: %w", err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, nil, fmt.Errorf("decode yaml: %w", err)
		}
		raw = b
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, fmt.Errorf("decode json: %w", err)
	}
	return raw, payload, nil
}

// validate checks payload against schema and flattens the first failing leaf
// into a short message.
func validate(schema *jsonschema.Schema, payload any) error {
	err := schema.Validate(payload)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	loc := leaf.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("%s: %s", loc, leaf.Message)
}
