package root

import (
	"cmp"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/golden-eagle-it-technologies/serverless/pkg/cli"
	"github.com/golden-eagle-it-technologies/serverless/pkg/pack"
	"github.com/golden-eagle-it-technologies/serverless/pkg/provider/aws"
	"github.com/golden-eagle-it-technologies/serverless/pkg/stats"
)

type deployFlags struct {
	stage  string
	region string
	role   string
}

func newDeployCmd() *cobra.Command {
	var flags deployFlags

	cmd := &cobra.Command{
		Use:     "deploy [function]",
		Short:   "Deploy the service, or a single function, to the provider",
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE:    flags.runDeployCommand,
	}

	cmd.Flags().StringVar(&flags.stage, "stage", "", "Stage to deploy to (overrides provider.stage)")
	cmd.Flags().StringVar(&flags.region, "region", "", "Region to deploy to (overrides provider.region)")
	cmd.Flags().StringVar(&flags.role, "role", "", "Execution role ARN for created functions")

	return cmd
}

func (f *deployFlags) runDeployCommand(cmd *cobra.Command, args []string) error {
	printer := cli.NewPrinter(cmd.OutOrStdout())

	svc, dir, err := loadService()
	if err != nil {
		return err
	}
	defer reportUsage(cmd, svc, true)

	if !strings.EqualFold(svc.Provider.Name, "aws") {
		return fmt.Errorf("provider %q is not supported", svc.Provider.Name)
	}

	only := ""
	if len(args) == 1 {
		only = args[0]
		found := false
		for _, fn := range svc.Functions {
			if fn.Name == only {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("function %q is not defined in the service", only)
		}
	}

	stage := cmp.Or(f.stage, svc.Provider.StageOrDefault())
	region := cmp.Or(f.region, svc.Provider.RegionOrDefault())

	printer.PrintServiceBanner(svc.Service, stage, region)

	archive, err := pack.Zip(dir, svc.Package.Include, svc.Package.Exclude)
	if err != nil {
		printer.PrintError(err)
		return RuntimeError{Err: err}
	}
	slog.Debug("Packaged service", "service", svc.Service, "bytes", len(archive))

	client, err := aws.New(cmd.Context(), region)
	if err != nil {
		printer.PrintError(err)
		return RuntimeError{Err: err}
	}

	role := f.role
	if role == "" {
		accountID, err := client.AccountID(cmd.Context())
		if err != nil {
			printer.PrintError(err)
			return RuntimeError{Err: err}
		}
		role = fmt.Sprintf("arn:aws:iam::%s:role/%s-%s-role", accountID, svc.Service, stage)
	}

	// Memory/timeout resolution matches what the usage snapshot reports
	profiles := stats.FunctionProfiles(svc)

	for i, fn := range svc.Functions {
		if only != "" && fn.Name != only {
			continue
		}
		name := aws.FunctionName(svc.Service, stage, fn.Name)
		printer.Printf("Deploying function %s...\n", name)

		err := client.DeployFunction(cmd.Context(), aws.FunctionConfig{
			Name:       name,
			Handler:    fn.Handler,
			Runtime:    svc.Provider.Runtime,
			Role:       role,
			MemorySize: profiles[i].MemorySize,
			Timeout:    profiles[i].Timeout,
		}, archive)
		if err != nil {
			printer.PrintError(err)
			return RuntimeError{Err: err}
		}
	}

	printer.Printf("\nService %s deployed.\n", svc.Service)
	return nil
}
