package helpers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/tinlera/tinlera-go/internal/ports"
)

// Prompter implements ports.ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter. Nil arguments default to stdio. Reads
// from a file that is not a terminal are treated as non-interactive.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	interactive := true
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Enabled reports whether questions can be answered.
func (p *Prompter) Enabled() bool {
	return p.interactive
}

// Confirm asks a yes/no question; anything but y or yes declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	if !p.Enabled() {
		return false, fmt.Errorf("confirmation required but stdin is not a terminal (pass --yes)")
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return isAffirmativeResponse(strings.ToLower(strings.TrimSpace(line))), nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
