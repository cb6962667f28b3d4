package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter wraps interactive stdin prompts so commands can be exercised
// in tests with scripted input.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints a label and returns the trimmed reply. After end of input
// it returns "" and marks the prompter closed, so re-prompt loops can
// bail out instead of spinning.
func (p *prompter) ask(label string) string {
	if p.eof {
		return ""
	}
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// askDefault returns def when the reply is empty.
func (p *prompter) askDefault(label, def string) string {
	reply := p.ask(label)
	if reply == "" {
		return def
	}
	return reply
}

// confirm asks a Y/N question.
func (p *prompter) confirm(label string) bool {
	return strings.EqualFold(p.ask(label), "y")
}

// closed reports whether input has ended.
func (p *prompter) closed() bool {
	return p.eof
}
