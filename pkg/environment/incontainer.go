package environment

import "os"

// containerMarkers are files whose presence indicates a container runtime.
var containerMarkers = []string{
	"/.dockerenv",
	"/run/.containerenv",
}

// IsInContainer reports whether the process runs inside a container.
func IsInContainer() bool {
	for _, marker := range containerMarkers {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}
	return false
}
