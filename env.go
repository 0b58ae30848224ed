// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"context"
	"io"
	"log/slog"
)

// HandlerFunc resolves, declines or escalates a condition.
// Returning nil resumes the code that signalled; a non-nil error becomes
// the signal's result.
type HandlerFunc func(c *Condition) error

// RestartFunc is a resumption action offered by a restartable scope.
// Its arguments are passed through [Env.InvokeRestart].
type RestartFunc func(args ...any) (any, error)

// Handler binds a [HandlerFunc] to a category.
type Handler struct {
	// Category selects the conditions the handler matches. Nil means [Root].
	Category    *Category
	Description string
	Func        HandlerFunc
}

// Restart binds a [RestartFunc] to a name.
type Restart struct {
	Name        string
	Description string
	Func        RestartFunc
}

// activeSignal records a handler that is currently running.
type activeSignal struct {
	cond  *Condition
	err   error
	entry *handlerEntry
	// frame is the handler stack index of the frame that registered entry.
	frame int
	// base is the handler stack depth when the handler started.
	base int
}

// Env is the condition state of one execution context: the handler and
// restart registry stacks, the stack of running handlers and the running
// code sections.
//
// An Env belongs to a single goroutine and is not safe for concurrent use.
// A goroutine spawned from code using an Env creates its own with [NewEnv]
// or [Env.Fork]; it never inherits registrations.
type Env struct {
	handlers stack[*Category, HandlerFunc]
	restarts stack[string, RestartFunc]
	active   []activeSignal
	sections []*Section

	logger   *slog.Logger
	observer Observer
}

// Option configures an [Env].
type Option func(*Env)

// WithLogger sets the logger for signal and restart events.
// The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Env) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver sets the observer notified of signals and restarts.
func WithObserver(o Observer) Option {
	return func(e *Env) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEnv creates an execution context whose stacks hold only the empty
// default frame.
func NewEnv(opts ...Option) *Env {
	e := &Env{
		handlers: newStack[*Category, HandlerFunc](),
		restarts: newStack[string, RestartFunc](),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fork creates a fresh Env for another goroutine. It shares the logger
// and observer but none of the registrations.
func (e *Env) Fork() *Env {
	return NewEnv(WithLogger(e.logger), WithObserver(e.observer))
}

// Logger returns the env's logger.
func (e *Env) Logger() *slog.Logger { return e.logger }

// HandlerDepth returns the number of frames on the handler stack,
// including the default frame.
func (e *Env) HandlerDepth() int { return e.handlers.depth() }

// RestartDepth returns the number of frames on the restart stack,
// including the default frame.
func (e *Env) RestartDepth() int { return e.restarts.depth() }

// WithHandlers registers hs on top of the current handlers for the
// duration of body. The registration is removed on every exit path.
//
// Example:
//
//	err := env.WithHandlers([]cond.Handler{{
//	    Category: ParseCategory,
//	    Func: func(c *cond.Condition) error {
//	        _, err := env.InvokeRestart("skip")
//	        return err
//	    },
//	}}, func() error {
//	    return parseAll(env, lines)
//	})
func (e *Env) WithHandlers(hs []Handler, body func() error) error {
	e.pushHandlers(hs)
	defer e.handlers.pop()
	return body()
}

// WithRestarts registers rs on top of the current restarts for the
// duration of body. The registration is removed on every exit path.
func (e *Env) WithRestarts(rs []Restart, body func() error) error {
	e.pushRestarts(rs)
	defer e.restarts.pop()
	return body()
}

func (e *Env) pushHandlers(hs []Handler) {
	entries := make([]*handlerEntry, len(hs))
	for i, h := range hs {
		cat := h.Category
		if cat == nil {
			cat = Root
		}
		entries[i] = &handlerEntry{key: cat, description: h.Description, action: h.Func}
	}
	e.handlers.push(entries)
}

func (e *Env) pushRestarts(rs []Restart) {
	entries := make([]*restartEntry, len(rs))
	for i, r := range rs {
		entries[i] = &restartEntry{key: r.Name, description: r.Description, action: r.Func}
	}
	e.restarts.push(entries)
}

type envKey struct{}

// NewContext returns a copy of ctx carrying env.
func NewContext(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// FromContext returns the Env stored in ctx by [NewContext], or nil.
func FromContext(ctx context.Context) *Env {
	env, _ := ctx.Value(envKey{}).(*Env)
	return env
}
