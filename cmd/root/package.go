package root

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/golden-eagle-it-technologies/serverless/pkg/cli"
	"github.com/golden-eagle-it-technologies/serverless/pkg/fsutil"
	"github.com/golden-eagle-it-technologies/serverless/pkg/pack"
)

func newPackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "package",
		Short:   "Package the service without deploying it",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := cli.NewPrinter(cmd.OutOrStdout())

			svc, dir, err := loadService()
			if err != nil {
				return err
			}
			defer reportUsage(cmd, svc, true)

			archive, err := pack.Zip(dir, svc.Package.Include, svc.Package.Exclude)
			if err != nil {
				printer.PrintError(err)
				return RuntimeError{Err: err}
			}

			target := filepath.Join(dir, ".serverless", fmt.Sprintf("%s.zip", svc.Service))
			if err := fsutil.WriteFile(target, archive); err != nil {
				printer.PrintError(err)
				return RuntimeError{Err: err}
			}

			printer.Printf("Service packaged to %s\n", target)
			return nil
		},
	}
}
