package root

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/golden-eagle-it-technologies/serverless/pkg/cli"
	"github.com/golden-eagle-it-technologies/serverless/pkg/provider/aws"
	"github.com/golden-eagle-it-technologies/serverless/pkg/stats"
)

type infoFlags struct {
	stage    string
	region   string
	deployed bool
}

func newInfoCmd() *cobra.Command {
	var flags infoFlags

	cmd := &cobra.Command{
		Use:     "info",
		Short:   "Display information about the service",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE:    flags.runInfoCommand,
	}

	cmd.Flags().StringVar(&flags.stage, "stage", "", "Stage to inspect (overrides provider.stage)")
	cmd.Flags().StringVar(&flags.region, "region", "", "Region to inspect (overrides provider.region)")
	cmd.Flags().BoolVar(&flags.deployed, "deployed", false, "Also show the deployed state of each function")

	return cmd
}

func (f *infoFlags) runInfoCommand(cmd *cobra.Command, _ []string) error {
	printer := cli.NewPrinter(cmd.OutOrStdout())

	svc, _, err := loadService()
	if err != nil {
		return err
	}
	defer reportUsage(cmd, svc, true)

	stage := cmp.Or(f.stage, svc.Provider.StageOrDefault())
	region := cmp.Or(f.region, svc.Provider.RegionOrDefault())

	printer.PrintKeyValue("service", svc.Service)
	printer.PrintKeyValue("provider", svc.Provider.Name)
	printer.PrintKeyValue("runtime", svc.Provider.Runtime)
	printer.PrintKeyValue("stage", stage)
	printer.PrintKeyValue("region", region)

	printer.PrintHeading("functions")
	profiles := stats.FunctionProfiles(svc)
	for i, fn := range svc.Functions {
		var eventNames []string
		for _, event := range fn.Events {
			eventNames = append(eventNames, event.Type())
		}
		detail := fmt.Sprintf("%dMB, %ds", profiles[i].MemorySize, profiles[i].Timeout)
		if len(eventNames) > 0 {
			detail += ", events: " + strings.Join(eventNames, ", ")
		}
		printer.PrintKeyValue(fn.Name, detail)
	}

	events := stats.SummarizeEvents(svc)
	if events.Total > 0 {
		printer.PrintHeading("events")
		for _, entry := range events.PerType {
			printer.PrintKeyValue(entry.Name, fmt.Sprintf("%d", entry.Count))
		}
	}

	if !f.deployed {
		return nil
	}

	if !strings.EqualFold(svc.Provider.Name, "aws") {
		return fmt.Errorf("provider %q is not supported", svc.Provider.Name)
	}

	client, err := aws.New(cmd.Context(), region)
	if err != nil {
		printer.PrintError(err)
		return RuntimeError{Err: err}
	}

	printer.PrintHeading("deployed")
	for _, fn := range svc.Functions {
		name := aws.FunctionName(svc.Service, stage, fn.Name)
		info, err := client.FunctionInfo(cmd.Context(), name)
		if err != nil {
			printer.PrintError(err)
			return RuntimeError{Err: err}
		}
		if info == nil {
			printer.PrintKeyValue(fn.Name, "not deployed")
			continue
		}
		printer.PrintKeyValue(fn.Name, fmt.Sprintf("%s, %dMB, %ds, updated %s", info.Runtime, info.MemorySize, info.Timeout, info.LastUpdate))
	}

	return nil
}
