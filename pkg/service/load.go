package service

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"

	"github.com/golden-eagle-it-technologies/serverless/pkg/fsutil"
)

// rawConfig mirrors the file layout. Functions decode into a MapSlice so that
// declaration order survives parsing.
type rawConfig struct {
	Service   string         `yaml:"service"`
	Provider  Provider       `yaml:"provider"`
	Plugins   []string       `yaml:"plugins"`
	Custom    map[string]any `yaml:"custom"`
	Resources *Resources     `yaml:"resources"`
	Functions yaml.MapSlice  `yaml:"functions"`
	Package   Package        `yaml:"package"`
}

// rawFunction is the loosely-typed function body. Unknown keys are ignored;
// memory and timeout stay untyped for the default fall-through.
type rawFunction struct {
	Handler    string           `mapstructure:"handler"`
	MemorySize any              `mapstructure:"memorySize"`
	Timeout    any              `mapstructure:"timeout"`
	Events     []map[string]any `mapstructure:"events"`
}

// Load reads and parses the service definition found in dir.
func Load(dir string) (*Config, error) {
	path := fsutil.ServiceFilePath(dir)
	if path == "" {
		return nil, fmt.Errorf("no serverless.yml found in %s", dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service definition: %w", err)
	}
	return Parse(data)
}

// Parse parses a service definition document.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse service definition: %w", err)
	}

	config := &Config{
		Service:   raw.Service,
		Provider:  raw.Provider,
		Plugins:   raw.Plugins,
		Custom:    raw.Custom,
		Resources: raw.Resources,
		Package:   raw.Package,
	}

	for _, item := range raw.Functions {
		name := fmt.Sprint(item.Key)

		fn, err := decodeFunction(name, item.Value)
		if err != nil {
			return nil, err
		}
		config.Functions = append(config.Functions, fn)
	}

	return config, nil
}

func decodeFunction(name string, value any) (Function, error) {
	fn := Function{Name: name}
	if value == nil {
		return fn, nil
	}

	var raw rawFunction
	if err := mapstructure.Decode(value, &raw); err != nil {
		return fn, fmt.Errorf("invalid function %q: %w", name, err)
	}

	fn.Handler = raw.Handler
	fn.MemorySize = raw.MemorySize
	fn.Timeout = raw.Timeout
	for _, event := range raw.Events {
		fn.Events = append(fn.Events, EventBinding(event))
	}

	return fn, nil
}
