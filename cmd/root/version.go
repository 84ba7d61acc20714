package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golden-eagle-it-technologies/serverless/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Long:  `Display the version and commit hash`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			reportUsage(cmd, nil, false)

			fmt.Fprintf(cmd.OutOrStdout(), "serverless version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", version.Commit)
		},
	}
}
