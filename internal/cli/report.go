package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
	skipMark = color.New(color.FgYellow).Sprint("-")
	faint    = color.New(color.Faint).SprintFunc()
	bold     = color.New(color.Bold).SprintFunc()
)

// reporter prints one status line per profile.
type reporter struct {
	w io.Writer
}

func (r reporter) ok(name, format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s %s\n", okMark, bold(name), fmt.Sprintf(format, args...))
}

func (r reporter) fail(name string, err error) {
	fmt.Fprintf(r.w, "%s %s %s\n", failMark, bold(name), color.RedString("%v", err))
}

func (r reporter) skip(name, reason string) {
	fmt.Fprintf(r.w, "%s %s %s\n", skipMark, bold(name), faint(reason))
}
