package root

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golden-eagle-it-technologies/serverless/pkg/cli"
	"github.com/golden-eagle-it-technologies/serverless/pkg/provider/aws"
)

type invokeFlags struct {
	stage  string
	region string
	data   string
}

func newInvokeCmd() *cobra.Command {
	var flags invokeFlags

	cmd := &cobra.Command{
		Use:     "invoke <function>",
		Short:   "Invoke a deployed function",
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE:    flags.runInvokeCommand,
	}

	cmd.Flags().StringVar(&flags.stage, "stage", "", "Stage of the deployed function")
	cmd.Flags().StringVar(&flags.region, "region", "", "Region of the deployed function")
	cmd.Flags().StringVar(&flags.data, "data", "{}", "JSON payload to invoke the function with")

	return cmd
}

func (f *invokeFlags) runInvokeCommand(cmd *cobra.Command, args []string) error {
	printer := cli.NewPrinter(cmd.OutOrStdout())

	svc, _, err := loadService()
	if err != nil {
		return err
	}
	defer reportUsage(cmd, svc, true)

	functionName := args[0]
	found := false
	for _, fn := range svc.Functions {
		if fn.Name == functionName {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("function %q is not defined in the service", functionName)
	}

	stage := cmp.Or(f.stage, svc.Provider.StageOrDefault())
	region := cmp.Or(f.region, svc.Provider.RegionOrDefault())

	client, err := aws.New(cmd.Context(), region)
	if err != nil {
		printer.PrintError(err)
		return RuntimeError{Err: err}
	}

	response, err := client.Invoke(cmd.Context(), aws.FunctionName(svc.Service, stage, functionName), []byte(f.data))
	if err != nil {
		printer.PrintError(err)
		return RuntimeError{Err: err}
	}

	printer.Println(string(response))
	return nil
}
