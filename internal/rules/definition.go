package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	KindBuiltin = "builtin"
	KindRegex   = "regex"
	KindCEL     = "cel"
)

// Definition is the content of a rule file. An empty file is a builtin
// definition that only names a catalog type.
type Definition struct {
	Kind       string `yaml:"kind"`
	Name       string `yaml:"name"`
	Message    string `yaml:"message"`
	Pattern    string `yaml:"pattern"`
	Expression string `yaml:"expression"`
	Implicit   bool   `yaml:"implicit"`
}

func ParseDefinition(data []byte) (Definition, error) {
	var def Definition

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return Definition{}, fmt.Errorf("decode rule definition: %w", err)
	}

	if def.Kind == "" {
		def.Kind = KindBuiltin
	}

	switch def.Kind {
	case KindBuiltin:
	case KindRegex:
		if def.Pattern == "" {
			return Definition{}, fmt.Errorf("regex rule definition requires a pattern")
		}
	case KindCEL:
		if def.Expression == "" {
			return Definition{}, fmt.Errorf("cel rule definition requires an expression")
		}
	default:
		return Definition{}, fmt.Errorf("unknown rule kind %q (valid: builtin, regex, cel)", def.Kind)
	}

	return def, nil
}
