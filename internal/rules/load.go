package rules

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// EnvRules names the environment variable that points at a rule set file.
const EnvRules = "HIRERISK_RULES"

//go:embed default.yaml
var defaultYAML []byte

//go:embed ruleset.schema.json
var schemaJSON string

const schemaURL = "https://employarmor.local/schemas/ruleset.schema.json"

var (
	compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			return nil, fmt.Errorf("ruleset schema load failed: %w", err)
		}
		return c.Compile(schemaURL)
	})

	builtin = sync.OnceValues(func() (*Ruleset, error) {
		rs, err := Parse(defaultYAML)
		if err != nil {
			return nil, fmt.Errorf("built-in ruleset: %w", err)
		}
		return rs, nil
	})
)

// Default returns the built-in rule set. It is parsed once per process.
func Default() (*Ruleset, error) {
	return builtin()
}

// DefaultYAML returns the source of the built-in rule set.
func DefaultYAML() []byte {
	return bytes.Clone(defaultYAML)
}

// Resolve loads the rule set at path. An empty path falls back to the file
// named by HIRERISK_RULES, then to the built-in rule set.
func Resolve(path string) (*Ruleset, error) {
	if path == "" {
		path = os.Getenv(EnvRules)
	}
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Load reads and parses a rule set file.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset: %w", err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading ruleset %q: %w", path, err)
	}
	return rs, nil
}

// Parse validates a YAML (or JSON) rule set document against the rule set
// schema, decodes it and builds a Ruleset.
func Parse(data []byte) (*Ruleset, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decoding ruleset: %w", err)
	}
	return New(def)
}

// validateSchema checks the generic form of the document against the
// embedded JSON Schema. YAML is converted through JSON so the validator
// sees plain JSON values.
func validateSchema(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("YAML parse failed: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("ruleset document is empty")
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("converting ruleset to JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(asJSON))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("converting ruleset to JSON: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("ruleset schema validation failed: %w", err)
	}
	return nil
}
