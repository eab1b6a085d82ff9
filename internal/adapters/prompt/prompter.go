// Package prompt asks the user for recipe arguments on the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// Prompter implements ports.Prompter over an input and an output stream.
type Prompter struct {
	mu          sync.Mutex
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

var _ ports.Prompter = (*Prompter)(nil)

// New creates a Prompter reading os.Stdin. It is interactive only when stdin
// is a terminal.
func New() *Prompter {
	return NewWithIO(os.Stdin, os.Stderr, term.IsTerminal(int(os.Stdin.Fd()))) //nolint:gosec // fd fits in int
}

// NewWithIO creates a Prompter over the given streams.
func NewWithIO(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Prompt asks for the value of key and returns the first line of input.
func (p *Prompter) Prompt(key string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	missing := zerr.With(zerr.Wrap(domain.ErrMissingRecipeArg, "no value given"), "key", key)
	if !p.interactive {
		return "", missing
	}

	if _, err := fmt.Fprintf(p.out, "%s: ", key); err != nil {
		return "", zerr.Wrap(err, "cannot write prompt")
	}

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", missing
	}
	return strings.TrimRight(line, "\r\n"), nil
}
