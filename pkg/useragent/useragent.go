package useragent

import (
	"fmt"
	"os"
	"runtime"

	"github.com/golden-eagle-it-technologies/serverless/pkg/version"
)

var Header = fmt.Sprintf("Serverless/%s (%s; %s)", version.Version, runtime.GOOS, runtime.GOARCH)

// Kind reports how the CLI was invoked: "dashboard" when launched by the
// managed dashboard, "cli" for a direct invocation.
func Kind() string {
	if os.Getenv("SERVERLESS_DASHBOARD") != "" {
		return "dashboard"
	}
	return "cli"
}
