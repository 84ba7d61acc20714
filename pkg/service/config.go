// Package service models the declarative service definition (serverless.yml):
// provider settings, functions with their event bindings, custom resources,
// and plugins.
package service

// DefaultVariableSyntax is the built-in variable-interpolation pattern.
// A provider declaring anything else counts as custom variable syntax.
const DefaultVariableSyntax = `\$\{([ ~:a-zA-Z0-9._@'",\-\/\(\)]+?)\}`

// Config is one parsed service definition. It is treated as an immutable
// snapshot: nothing in this module mutates it after parsing.
type Config struct {
	Service   string
	Provider  Provider
	Plugins   []string
	Custom    map[string]any
	Resources *Resources
	Functions []Function
	Package   Package
}

// Package holds the service-level packaging globs. Include patterns override
// excludes.
type Package struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Provider holds provider-level settings. MemorySize and Timeout stay
// untyped: the definition may carry non-numeric values there and those must
// fall through to the built-in defaults instead of failing.
type Provider struct {
	Name           string `yaml:"name"`
	Runtime        string `yaml:"runtime"`
	Stage          string `yaml:"stage"`
	Region         string `yaml:"region"`
	VariableSyntax string `yaml:"variableSyntax"`
	MemorySize     any    `yaml:"memorySize"`
	Timeout        any    `yaml:"timeout"`
}

// Resources is the optional custom-infrastructure section.
type Resources struct {
	Resources map[string]any `yaml:"Resources"`
	Outputs   map[string]any `yaml:"Outputs"`
}

// Function is one function declaration. Functions keep the order in which
// they appear in the definition file.
type Function struct {
	Name       string
	Handler    string
	MemorySize any
	Timeout    any
	Events     []EventBinding
}

// EventBinding is a single event declaration: a one-key mapping from the
// event-type name ("http", "s3", ...) to an event-specific descriptor.
type EventBinding map[string]any

// Type returns the event-type name of the binding, or an empty string for a
// malformed (empty) binding.
func (e EventBinding) Type() string {
	for name := range e {
		return name
	}
	return ""
}

// Descriptor returns the event-specific descriptor value.
func (e EventBinding) Descriptor() any {
	return e[e.Type()]
}

// StageOrDefault returns the configured stage, or "dev".
func (p Provider) StageOrDefault() string {
	if p.Stage != "" {
		return p.Stage
	}
	return "dev"
}

// RegionOrDefault returns the configured region, or "us-east-1".
func (p Provider) RegionOrDefault() string {
	if p.Region != "" {
		return p.Region
	}
	return "us-east-1"
}
