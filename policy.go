// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Names of the restarts provided by [Policy.Restarts].
const (
	RestartResignal  = "resignal"
	RestartBacktrace = "backtrace"
	RestartAbort     = "abort"
)

// Prompter reads one line of input after showing prompt.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// LinePrompter is a [Prompter] over a plain reader and writer.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter creates a prompter that writes prompts to w and reads
// newline-terminated answers from r.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Prompt implements [Prompter]. A final line without a newline is
// returned; io.EOF is reported only when nothing was read.
func (p *LinePrompter) Prompt(prompt string) (string, error) {
	if _, err := io.WriteString(p.w, prompt); err != nil {
		return "", err
	}
	line, err := p.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Policy is the default handler and restart set.
//
// Its handler for [Root] shows the condition, lists the available
// restarts and invokes the one the user picks. Its restarts re-signal the
// condition outward, print its backtrace, or abort. All of them are
// ordinary entries; install them with [Env.WithDefaultHandlers] or
// register them wherever a [Handler] or [Restart] is accepted.
type Policy struct {
	env       *Env
	in        Prompter
	out       io.Writer
	logger    *slog.Logger
	emphasize func(string) string
}

// PolicyOption configures a [Policy].
type PolicyOption func(*Policy)

// WithPrompter sets where the chooser reads answers. The default reads
// lines from stdin and prompts on stderr.
func WithPrompter(p Prompter) PolicyOption {
	return func(pol *Policy) { pol.in = p }
}

// WithOutput sets where the chooser writes the condition and the menu.
// The default is stderr.
func WithOutput(w io.Writer) PolicyOption {
	return func(pol *Policy) { pol.out = w }
}

// WithEmphasis sets a function decorating the condition headline, e.g.
// with terminal colors.
func WithEmphasis(f func(string) string) PolicyOption {
	return func(pol *Policy) { pol.emphasize = f }
}

// WithPolicyLogger sets the logger used by [Policy.LoggingHandlers].
// The default is the env's logger.
func WithPolicyLogger(l *slog.Logger) PolicyOption {
	return func(pol *Policy) { pol.logger = l }
}

// NewPolicy creates the default policy for env.
func NewPolicy(env *Env, opts ...PolicyOption) *Policy {
	p := &Policy{
		env:       env,
		out:       os.Stderr,
		logger:    env.Logger(),
		emphasize: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.in == nil {
		p.in = NewLinePrompter(os.Stdin, os.Stderr)
	}
	return p
}

// Handlers returns the interactive chooser registered for [Root].
func (p *Policy) Handlers() []Handler {
	return []Handler{{Category: Root, Description: "Choose a restart interactively.", Func: p.choose}}
}

// LoggingHandlers returns a [Root] handler that logs the condition and
// re-signals it to the next handler out.
func (p *Policy) LoggingHandlers() []Handler {
	return []Handler{{Category: Root, Description: "Log the condition and pass it on.", Func: p.logAndResignal}}
}

// Restarts returns the resignal, backtrace and abort restarts.
func (p *Policy) Restarts() []Restart {
	return []Restart{
		{Name: RestartResignal, Description: "Signal this condition to outer handlers.", Func: p.resignal},
		{Name: RestartBacktrace, Description: "Show backtrace.", Func: p.backtrace},
		{Name: RestartAbort, Description: "Abort.", Func: p.abort},
	}
}

// WithDefaultHandlers runs body with the policy's handlers and restarts
// registered.
func (e *Env) WithDefaultHandlers(p *Policy, body func() error) error {
	return e.WithHandlers(p.Handlers(), func() error {
		return e.WithRestarts(p.Restarts(), body)
	})
}

func (p *Policy) choose(c *Condition) error {
	p.describe(c)
	for {
		restarts := p.env.AvailableRestarts()
		if len(restarts) == 0 {
			return c
		}
		i, err := p.ask(restarts)
		if err != nil {
			p.logger.Debug("cond: chooser input", "err", err)
			return c
		}
		_, err = p.env.InvokeRestart(restarts[i].Name)
		if errors.Is(err, ErrReprompt) {
			continue
		}
		return err
	}
}

func (p *Policy) describe(c *Condition) {
	if frames := c.Frames(); len(frames) > 0 {
		fmt.Fprintf(p.out, "%s:%d: in %s\n", frames[0].File, frames[0].Line, frames[0].Function)
	}
	fmt.Fprintf(p.out, "%s (%s)\n\n", p.emphasize(c.Error()), c.category)
}

// ask shows the menu until a valid index is entered.
func (p *Policy) ask(restarts []Restart) (int, error) {
	for {
		for i, r := range restarts {
			desc := ""
			if r.Description != "" {
				desc = r.Description + " "
			}
			fmt.Fprintf(p.out, "%3d: %s(%s)\n", i, desc, r.Name)
		}
		input, err := p.in.Prompt("Choose number: ")
		if err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(strings.TrimSpace(input))
		if err == nil && i >= 0 && i < len(restarts) {
			return i, nil
		}
	}
}

func (p *Policy) logAndResignal(c *Condition) error {
	p.logger.Warn("condition signalled", "category", c.category.String(), "condition", c.Error())
	return p.env.Resignal()
}

func (p *Policy) resignal(...any) (any, error) {
	return nil, p.env.Resignal()
}

func (p *Policy) backtrace(...any) (any, error) {
	if c := p.env.ActiveCondition(); c != nil {
		for _, f := range c.Frames() {
			fmt.Fprintf(p.out, "\t%s\n\t\t%s:%d\n", f.Function, f.File, f.Line)
		}
	}
	return nil, ErrReprompt
}

func (p *Policy) abort(...any) (any, error) {
	if c := p.env.ActiveCondition(); c != nil {
		return nil, fmt.Errorf("%w: %w", ErrAborted, c)
	}
	return nil, ErrAborted
}
