// Package config loads .kipaco.toml files.
//
//	trace = false
//
//	[log]
//	verbosity = 1
//	file = "kipaco.log"
//
//	[languages.conf]
//	extensions = [".conf", ".toml", ".ini"]
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/invopop/jsonschema"

	"github.com/dhamidi/kipaco/lang"
)

// DefaultFile is the name looked up when no path is given.
const DefaultFile = ".kipaco.toml"

type Config struct {
	Trace     bool                `toml:"trace" jsonschema:"description=Log every parser attempt at debug level"`
	Log       Log                 `toml:"log"`
	Languages map[string]Language `toml:"languages" jsonschema:"description=Per language settings keyed by language name"`
}

type Log struct {
	Verbosity int    `toml:"verbosity" jsonschema:"minimum=0,maximum=2,description=0 notices and 2 debug"`
	File      string `toml:"file" jsonschema:"description=Log file path; logs go to stderr when empty"`
}

type Language struct {
	Extensions []string `toml:"extensions" jsonschema:"description=File extensions replacing the defaults"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Languages: map[string]Language{},
	}
}

// Load reads the file at path. A missing file yields Default.
// Unknown keys are errors.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if cfg.Languages == nil {
		cfg.Languages = map[string]Language{}
	}
	return cfg, nil
}

// Apply sets the extensions of the configured languages in reg.
func (c *Config) Apply(reg *lang.Registry) error {
	names := make([]string, 0, len(c.Languages))
	for name := range c.Languages {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		exts := c.Languages[name].Extensions
		if exts == nil {
			continue
		}
		if err := reg.SetExtensions(name, exts); err != nil {
			return fmt.Errorf("apply config: %w", err)
		}
	}
	return nil
}

// Schema returns the JSON Schema describing the configuration file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:   "toml",
		ExpandedStruct: true,
	}
	schema := r.Reflect(&Config{})
	schema.Title = "kipaco configuration"
	return json.MarshalIndent(schema, "", "  ")
}
