package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	rawyaml "gopkg.in/yaml.v3"
)

// envPrefix namespaces every environment variable this package reads.
const envPrefix = "SEQUENCEMCTS_"

// Load loads configuration with precedence env > file > defaults.
// configPath may be empty, in which case only the environment and the
// built-in defaults apply.
//
// SEQUENCEMCTS_SEARCH__PUCT_C -> search.puct_c (double underscore becomes a
// dot; a single underscore is preserved, matching struct field names).
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: failed to load %s: %w", configPath, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: failed to load environment: %w", err)
	}

	out := Default()
	if err := k.UnmarshalWithConf("", &out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("config: unmarshal failed: %w", err)
	}

	v := validator.New()
	if err := v.Struct(&out); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return &out, nil
}

// Dump renders a Config back to YAML, for writing out an example file a user
// can start editing from (e.g. seeded with Default()).
func Dump(c Config) ([]byte, error) {
	out, err := rawyaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal failed: %w", err)
	}
	return out, nil
}
