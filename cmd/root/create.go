package root

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/golden-eagle-it-technologies/serverless/pkg/cli"
	"github.com/golden-eagle-it-technologies/serverless/pkg/fsutil"
)

const serviceTemplate = `service: %s

provider:
  name: aws
  runtime: go1.x
  stage: dev
  region: us-east-1

functions:
  hello:
    handler: bin/hello
    events:
      - http:
          path: /hello
          method: get
`

const handlerTemplate = `package main

import "fmt"

func main() {
	fmt.Println("hello from %s")
}
`

type createFlags struct {
	path         string
	name         string
	templatePath string
}

func newCreateCmd() *cobra.Command {
	var flags createFlags

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a new service skeleton",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE:    flags.runCreateCommand,
	}

	cmd.Flags().StringVar(&flags.path, "path", ".", "Directory to create the service in")
	cmd.Flags().StringVar(&flags.name, "name", "", "Service name (default: directory name)")
	cmd.Flags().StringVar(&flags.templatePath, "template-path", "", "Directory to copy as the service skeleton instead of the built-in one")

	return cmd
}

func (f *createFlags) runCreateCommand(cmd *cobra.Command, _ []string) error {
	printer := cli.NewPrinter(cmd.OutOrStdout())
	defer reportUsage(cmd, nil, false)

	dir, err := filepath.Abs(f.path)
	if err != nil {
		return err
	}

	if fsutil.ServiceFilePath(dir) != "" {
		return fmt.Errorf("a service already exists in %s", dir)
	}

	name := f.name
	if name == "" {
		name = strings.ToLower(filepath.Base(dir))
	}

	if f.templatePath != "" {
		if !fsutil.DirExists(f.templatePath) {
			return fmt.Errorf("template path %s does not exist", f.templatePath)
		}
		if err := fsutil.CopyDir(f.templatePath, dir); err != nil {
			printer.PrintError(err)
			return RuntimeError{Err: err}
		}
	} else {
		definition := fmt.Sprintf(serviceTemplate, name)
		if err := fsutil.WriteFile(filepath.Join(dir, "serverless.yml"), []byte(definition)); err != nil {
			printer.PrintError(err)
			return RuntimeError{Err: err}
		}

		handler := fmt.Sprintf(handlerTemplate, name)
		if err := fsutil.WriteFile(filepath.Join(dir, "hello", "main.go"), []byte(handler)); err != nil {
			printer.PrintError(err)
			return RuntimeError{Err: err}
		}
	}

	printer.Printf("Service %s created in %s\n", name, dir)
	return nil
}
