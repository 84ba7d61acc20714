package root

import (
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/golden-eagle-it-technologies/serverless/pkg/cli"
	"github.com/golden-eagle-it-technologies/serverless/pkg/service"
)

func newPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "print",
		Short:   "Print the parsed service definition",
		GroupID: "advanced",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := cli.NewPrinter(cmd.OutOrStdout())

			svc, _, err := loadService()
			if err != nil {
				return err
			}
			defer reportUsage(cmd, svc, true)

			out, err := yaml.Marshal(printableConfig(svc))
			if err != nil {
				printer.PrintError(err)
				return RuntimeError{Err: err}
			}

			printer.Printf("%s", out)
			return nil
		},
	}
}

// printableConfig rebuilds the definition as a MapSlice so the output keeps
// the declaration order of functions and omits empty sections.
func printableConfig(svc *service.Config) yaml.MapSlice {
	doc := yaml.MapSlice{
		{Key: "service", Value: svc.Service},
		{Key: "provider", Value: svc.Provider},
	}
	if len(svc.Plugins) > 0 {
		doc = append(doc, yaml.MapItem{Key: "plugins", Value: svc.Plugins})
	}
	if len(svc.Custom) > 0 {
		doc = append(doc, yaml.MapItem{Key: "custom", Value: svc.Custom})
	}
	if len(svc.Package.Include) > 0 || len(svc.Package.Exclude) > 0 {
		doc = append(doc, yaml.MapItem{Key: "package", Value: svc.Package})
	}

	var functions yaml.MapSlice
	for _, fn := range svc.Functions {
		functions = append(functions, yaml.MapItem{Key: fn.Name, Value: printableFunction(fn)})
	}
	if len(functions) > 0 {
		doc = append(doc, yaml.MapItem{Key: "functions", Value: functions})
	}

	if svc.Resources != nil {
		doc = append(doc, yaml.MapItem{Key: "resources", Value: svc.Resources})
	}
	return doc
}

func printableFunction(fn service.Function) yaml.MapSlice {
	body := yaml.MapSlice{
		{Key: "handler", Value: fn.Handler},
	}
	if fn.MemorySize != nil {
		body = append(body, yaml.MapItem{Key: "memorySize", Value: fn.MemorySize})
	}
	if fn.Timeout != nil {
		body = append(body, yaml.MapItem{Key: "timeout", Value: fn.Timeout})
	}
	if len(fn.Events) > 0 {
		body = append(body, yaml.MapItem{Key: "events", Value: fn.Events})
	}
	return body
}
