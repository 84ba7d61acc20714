package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var bold = color.New(color.Bold).SprintfFunc()

type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	if f, ok := out.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
		color.NoColor = true
	}
	return &Printer{
		out: out,
	}
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) {
	p.Printf("❌ %s\n", err)
}

// PrintHeading prints a bold section heading
func (p *Printer) PrintHeading(heading string) {
	p.Printf("\n--- %s ---\n", bold(heading))
}

// PrintKeyValue prints an aligned key/value line
func (p *Printer) PrintKeyValue(key, value string) {
	p.Printf("%s: %s\n", bold(key), value)
}

// PrintServiceBanner prints the deployment banner for a service
func (p *Printer) PrintServiceBanner(serviceName, stage, region string) {
	p.Printf("\nDeploying %s to stage %s (%s)\n\n", bold(serviceName), bold(stage), region)
}
