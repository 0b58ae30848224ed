// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package console is the terminal front end of the default condition
// policy: line editing with history on a TTY, plain line reading
// otherwise, and a highlighted condition headline.
package console

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"code.hybscloud.com/cond"
)

// LinerPrompter reads answers with line editing and history.
type LinerPrompter struct {
	state *liner.State
}

// NewLinerPrompter takes over the terminal until Close is called.
// Ctrl-C aborts the prompt, which is reported as io.EOF.
func NewLinerPrompter() *LinerPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinerPrompter{state: state}
}

// Prompt implements [cond.Prompter].
func (p *LinerPrompter) Prompt(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal.
func (p *LinerPrompter) Close() error { return p.state.Close() }

// IsTerminal reports whether both stdin and stderr are terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// NewPrompter returns a [LinerPrompter] when running on a terminal and a
// [cond.LinePrompter] over stdin and stderr otherwise. The returned close
// function releases the terminal.
func NewPrompter() (cond.Prompter, func() error) {
	return newPrompter(IsTerminal(), os.Stdin, os.Stderr)
}

func newPrompter(tty bool, in io.Reader, out io.Writer) (cond.Prompter, func() error) {
	if tty {
		p := NewLinerPrompter()
		return p, p.Close
	}
	return cond.NewLinePrompter(in, out), func() error { return nil }
}

// Emphasis returns a decorator rendering text bold and colored on
// stderr, where the chooser writes. Text is returned unchanged when stderr
// has no color support or NO_COLOR is set.
func Emphasis() func(string) string {
	return emphasis(termenv.NewOutput(os.Stderr))
}

func emphasis(o *termenv.Output) func(string) string {
	if o.Profile == termenv.Ascii {
		return func(s string) string { return s }
	}
	return func(s string) string {
		return o.String(s).Foreground(o.Color("#fb7185")).Bold().String()
	}
}

// NewPolicy builds the default policy for env on the process's terminal.
// Call the returned function when the policy is no longer used.
func NewPolicy(env *cond.Env, opts ...cond.PolicyOption) (*cond.Policy, func() error) {
	prompter, closeFn := NewPrompter()
	base := []cond.PolicyOption{
		cond.WithPrompter(prompter),
		cond.WithOutput(os.Stderr),
		cond.WithEmphasis(Emphasis()),
	}
	return cond.NewPolicy(env, append(base, opts...)...), closeFn
}
