package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/golden-eagle-it-technologies/serverless/pkg/fsutil"
	"github.com/golden-eagle-it-technologies/serverless/pkg/service"
	"github.com/golden-eagle-it-technologies/serverless/pkg/stats"
	"github.com/golden-eagle-it-technologies/serverless/pkg/telemetry"
	"github.com/golden-eagle-it-technologies/serverless/pkg/userconfig"
)

// loadService locates and parses the service definition, walking up from the
// working directory.
func loadService() (*service.Config, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve working directory: %w", err)
	}

	dir := fsutil.FindServicePath(cwd)
	if dir == "" {
		return nil, "", fmt.Errorf("no serverless.yml found in %s or any parent directory", cwd)
	}

	cfg, err := service.Load(dir)
	if err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}

// optionSnapshot converts the flags the user actually set into the loose
// option mapping consumed by the stats aggregator.
func optionSnapshot(flags *pflag.FlagSet) map[string]any {
	options := map[string]any{}
	flags.Visit(func(f *pflag.Flag) {
		if f.Value.Type() == "bool" {
			options[f.Name] = f.Value.String() == "true"
			return
		}
		options[f.Name] = f.Value.String()
	})
	return options
}

// reportUsage assembles the usage snapshot for one command run and hands it
// to the emit client. It never interferes with the command itself: a nil
// service yields an empty snapshot and a disabled tracking preference
// suppresses emission entirely.
func reportUsage(cmd *cobra.Command, svc *service.Config, inService bool) {
	if svc == nil {
		svc = &service.Config{}
	}

	stats.Report(svc, userconfig.Load(), stats.Invocation{
		Command:   cmd.Name(),
		Options:   optionSnapshot(cmd.Flags()),
		InService: inService,
	}, telemetry.GetGlobalClient())
}
