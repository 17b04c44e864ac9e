package cli

import (
	"fmt"
	"io"
	"strings"
)

// printer writes status lines. Symbols carry the meaning so output stays
// readable when piped or captured in tests.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) Header(title string) {
	line := strings.Repeat("=", len(title)+4)
	fmt.Fprintf(p.w, "%s\n  %s\n%s\n", line, title, line)
}

func (p *printer) Success(message string) {
	fmt.Fprintf(p.w, "✓ %s\n", message)
}

func (p *printer) Error(message string) {
	fmt.Fprintf(p.w, "✗ %s\n", message)
}

func (p *printer) Warning(message string) {
	fmt.Fprintf(p.w, "⚠ %s\n", message)
}

func (p *printer) Info(message string) {
	fmt.Fprintln(p.w, message)
}

func (p *printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
