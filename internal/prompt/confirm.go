// Package prompt asks the user simple yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers from In and writes questions to Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// Interactive is false when nobody can answer, e.g. stdin is a pipe
	// from a git hook. Questions are then declined without reading.
	Interactive bool
}

// Stdio returns a prompter on the process's standard streams.
func Stdio() *Prompter {
	return &Prompter{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// Confirm prints question and reports whether the answer was "y" or "yes".
// End of input counts as no.
func (p *Prompter) Confirm(question string) (bool, error) {
	if !p.Interactive {
		fmt.Fprintln(p.Out, question+"n (not a terminal)")
		return false, nil
	}
	fmt.Fprint(p.Out, question)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return IsYes(line), nil
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
