package root

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/golden-eagle-it-technologies/serverless/pkg/cli"
	"github.com/golden-eagle-it-technologies/serverless/pkg/userconfig"
)

type slstatsFlags struct {
	enable  bool
	disable bool
}

func newSlstatsCmd() *cobra.Command {
	var flags slstatsFlags

	cmd := &cobra.Command{
		Use:     "slstats",
		Short:   "Enable or disable anonymous usage statistics",
		GroupID: "advanced",
		Args:    cobra.NoArgs,
		RunE:    flags.runSlstatsCommand,
	}

	cmd.Flags().BoolVar(&flags.enable, "enable", false, "Enable usage statistics")
	cmd.Flags().BoolVar(&flags.disable, "disable", false, "Disable usage statistics")

	return cmd
}

func (f *slstatsFlags) runSlstatsCommand(cmd *cobra.Command, _ []string) error {
	printer := cli.NewPrinter(cmd.OutOrStdout())

	if f.enable == f.disable {
		return errors.New("either --enable or --disable must be given")
	}

	config := userconfig.Load()
	if err := config.SetTrackingDisabled(f.disable); err != nil {
		printer.PrintError(err)
		return RuntimeError{Err: err}
	}

	// Report after the toggle so a fresh opt-out is honored immediately
	reportUsage(cmd, nil, false)

	if f.disable {
		printer.Println("Usage statistics disabled.")
	} else {
		printer.Println("Usage statistics enabled.")
	}
	return nil
}
