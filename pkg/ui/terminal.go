package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Banner is printed once at startup
const Banner = `
    ╔═══════════════════════════════════════════════╗
    ║   F O L L O W S N A P                         ║
    ║   follower snapshots and what changed between ║
    ╚═══════════════════════════════════════════════╝
`

const (
	cyan    = "\033[36m"
	yellow  = "\033[33m"
	red     = "\033[31m"
	green   = "\033[32m"
	magenta = "\033[35m"
	dim     = "\033[2m"
	reset   = "\033[0m"
)

// Printer writes colored, human-facing messages. Colors are dropped when
// the destination is not a terminal.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a printer for out. Colors are enabled only when out is
// a terminal and noColor is false.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	return &Printer{out: out, color: !noColor && isTerminal(out)}
}

// Stdout creates a printer for standard output
func Stdout(noColor bool) *Printer {
	return NewPrinter(os.Stdout, noColor)
}

// Stderr creates a printer for standard error
func Stderr(noColor bool) *Printer {
	return NewPrinter(os.Stderr, noColor)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *Printer) paint(code, text string) string {
	if !p.color {
		return text
	}
	return code + text + reset
}

func (p *Printer) Cyan(text string) string    { return p.paint(cyan, text) }
func (p *Printer) Yellow(text string) string  { return p.paint(yellow, text) }
func (p *Printer) Red(text string) string     { return p.paint(red, text) }
func (p *Printer) Green(text string) string   { return p.paint(green, text) }
func (p *Printer) Magenta(text string) string { return p.paint(magenta, text) }
func (p *Printer) Dim(text string) string     { return p.paint(dim, text) }

// PrintBanner prints the startup banner
func (p *Printer) PrintBanner() {
	fmt.Fprint(p.out, p.Cyan(Banner))
}

// PrintError prints an error message in red
func (p *Printer) PrintError(msg string, err error) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	fmt.Fprintln(p.out, p.Red("Error: "+msg))
}

// PrintSuccess prints a success message in green
func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.out, p.Green(msg))
}

// PrintInfo prints a label and value
func (p *Printer) PrintInfo(label string, value interface{}) {
	fmt.Fprintf(p.out, "%s: %s\n", p.Cyan(label), p.Yellow(fmt.Sprint(value)))
}

// PrintWarning prints a warning message in yellow
func (p *Printer) PrintWarning(msg string) {
	fmt.Fprintln(p.out, p.Yellow(msg))
}

// PrintHighlight prints a highlighted message in magenta
func (p *Printer) PrintHighlight(msg string) {
	fmt.Fprintln(p.out, p.Magenta(msg))
}

// PrintRule prints a dimmed horizontal rule
func (p *Printer) PrintRule() {
	fmt.Fprintln(p.out, p.Dim(strings.Repeat("-", 70)))
}
