// Package config holds the frontend's runtime configuration: the CLI
// flags cmd/nyxc binds with cobra/pflag, plus an optional config-file
// overlay (.nyxc.json / .nyxc.yaml) validated against a JSON Schema
// before being merged in.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Config is every flag spec.md §6.1 names, plus the config-file
// overlay fields. Flags set on the command line always win over the
// file.
type Config struct {
	Input   []string `json:"input,omitempty" yaml:"input,omitempty"`
	Output  []string `json:"output,omitempty" yaml:"output,omitempty"`
	Verbose bool     `json:"verbose,omitempty" yaml:"verbose,omitempty"`

	DumpAST      bool `json:"dumpAst,omitempty" yaml:"dumpAst,omitempty"`
	DumpTokens   bool `json:"dumpTokens,omitempty" yaml:"dumpTokens,omitempty"`
	DumpEntities bool `json:"dumpEntities,omitempty" yaml:"dumpEntities,omitempty"`
	DumpIR       bool `json:"dumpIr,omitempty" yaml:"dumpIr,omitempty"`
	DumpContext  bool `json:"dumpContext,omitempty" yaml:"dumpContext,omitempty"`

	Colours bool `json:"colours,omitempty" yaml:"colours,omitempty"`
}

// Default returns the flag defaults spec.md §6.1 specifies: colour
// output on, everything else off.
func Default() Config {
	return Config{Colours: true}
}

// Validate checks the input/output count-matching invariant spec.md
// §6.1 requires.
func (c Config) Validate() error {
	if len(c.Input) == 0 {
		return fmt.Errorf("config: at least one --input file is required")
	}
	if len(c.Output) != 0 && len(c.Output) != len(c.Input) {
		return fmt.Errorf("config: --output count (%d) must match --input count (%d)", len(c.Output), len(c.Input))
	}
	return nil
}

// schemaJSON is kept as an inline literal rather than an embedded file
// — it's small enough that a separate schema.json would just be one
// more file to keep in sync.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "input": {"type": "array", "items": {"type": "string"}},
    "output": {"type": "array", "items": {"type": "string"}},
    "verbose": {"type": "boolean"},
    "dumpAst": {"type": "boolean"},
    "dumpTokens": {"type": "boolean"},
    "dumpEntities": {"type": "boolean"},
    "dumpIr": {"type": "boolean"},
    "dumpContext": {"type": "boolean"},
    "colours": {"type": "boolean"}
  },
  "additionalProperties": false
}`

func compiledSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("nyxc-config.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile("nyxc-config.schema.json")
}

// LoadFile reads a .nyxc.json or .nyxc.yaml configuration overlay from
// path, validates it against the embedded schema, and returns the
// decoded Config. YAML is first converted to a generic map and
// re-marshaled to JSON so the same schema validates both formats.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	jsonBytes := raw
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		var generic interface{}
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s as YAML: %w", path, err)
		}
		jsonBytes, err = json.Marshal(generic)
		if err != nil {
			return Config{}, fmt.Errorf("config: converting %s to JSON: %w", path, err)
		}
	}

	schema, err := compiledSchema()
	if err != nil {
		return Config{}, fmt.Errorf("config: compiling schema: %w", err)
	}
	var asAny interface{}
	if err := json.Unmarshal(jsonBytes, &asAny); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := schema.Validate(asAny); err != nil {
		return Config{}, fmt.Errorf("config: %s failed schema validation: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(jsonBytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays file values onto c wherever c holds an empty list or a
// false flag. A flag left false on the command line is therefore turned
// on by a true value in the file. Colours is never taken from the file.
func (c Config) Merge(file Config) Config {
	out := c
	if len(out.Input) == 0 {
		out.Input = file.Input
	}
	if len(out.Output) == 0 {
		out.Output = file.Output
	}
	if !out.Verbose {
		out.Verbose = file.Verbose
	}
	if !out.DumpAST {
		out.DumpAST = file.DumpAST
	}
	if !out.DumpTokens {
		out.DumpTokens = file.DumpTokens
	}
	if !out.DumpEntities {
		out.DumpEntities = file.DumpEntities
	}
	if !out.DumpIR {
		out.DumpIR = file.DumpIR
	}
	if !out.DumpContext {
		out.DumpContext = file.DumpContext
	}
	return out
}
