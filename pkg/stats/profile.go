package stats

import "github.com/golden-eagle-it-technologies/serverless/pkg/service"

// Hard defaults applied when neither the function nor the provider declares
// a usable numeric value.
const (
	DefaultMemorySize = 1024
	DefaultTimeout    = 6
)

// MemoryTimeout is the derived memory/timeout pair for one function.
type MemoryTimeout struct {
	MemorySize int `json:"memorySize"`
	Timeout    int `json:"timeout"`
}

// FunctionProfiles derives one MemoryTimeout per function, in declaration
// order. Missing or non-numeric values fall through to the provider-level
// default, then to the hard default; nothing here ever fails.
func FunctionProfiles(cfg *service.Config) []MemoryTimeout {
	providerMemory := intOrDefault(cfg.Provider.MemorySize, DefaultMemorySize)
	providerTimeout := intOrDefault(cfg.Provider.Timeout, DefaultTimeout)

	profiles := make([]MemoryTimeout, 0, len(cfg.Functions))
	for _, fn := range cfg.Functions {
		profiles = append(profiles, MemoryTimeout{
			MemorySize: intOrDefault(fn.MemorySize, providerMemory),
			Timeout:    intOrDefault(fn.Timeout, providerTimeout),
		})
	}
	return profiles
}

// intOrDefault coerces any numeric YAML value to an int, returning fallback
// for everything else (nil, strings, maps, ...).
func intOrDefault(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	}
	return fallback
}
