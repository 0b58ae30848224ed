// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"strconv"
	"sync/atomic"
)

// Kind distinguishes handling sections from restartable sections.
type Kind uint8

const (
	// Handling sections register handlers.
	Handling Kind = iota + 1
	// Restartable sections register restarts.
	Restartable
)

func (k Kind) String() string {
	switch k {
	case Handling:
		return "handling"
	case Restartable:
		return "restartable"
	}
	return "section"
}

type sectionState uint8

const (
	pending sectionState = iota
	running
	done
)

// sectionIDs numbers sections process-wide. Sections are created
// concurrently on different goroutines.
var sectionIDs atomic.Uint64

// Section is a handling or restartable block.
//
// A section is built first: [Section.Handle] or [Section.Restart] collect
// registrations. [Section.Run] then pushes them as one frame and runs the
// body until it returns or calls [Section.Leave]. [Section.Again] re-runs
// the body with new arguments while the frame stays registered. The frame
// is popped exactly once, whichever way the section ends.
//
// Example:
//
//	s := env.Restartable()
//	s.Restart("use-value", "Use a replacement value.", func(args ...any) (any, error) {
//	    s.Leave(args...)
//	    return nil, nil
//	})
//	v, err := s.Run(func(...any) (any, error) {
//	    return parse(env, text)
//	})
//
// A Section runs at most once.
type Section struct {
	env      *Env
	kind     Kind
	id       uint64
	state    sectionState
	handlers []Handler
	restarts []Restart
	args     []any
}

// transfer is the panic value carrying Leave and Again to Run.
type transfer struct {
	id     uint64
	again  bool
	values []any
}

// Handling creates a handling section.
func (e *Env) Handling() *Section { return e.newSection(Handling) }

// Restartable creates a restartable section.
func (e *Env) Restartable() *Section { return e.newSection(Restartable) }

func (e *Env) newSection(kind Kind) *Section {
	return &Section{env: e, kind: kind, id: sectionIDs.Add(1)}
}

// ID returns the section's process-unique identifier.
func (s *Section) ID() uint64 { return s.id }

// Kind returns the section kind.
func (s *Section) Kind() Kind { return s.kind }

func (s *Section) String() string {
	return s.kind.String() + "#" + strconv.FormatUint(s.id, 10)
}

// Handle registers a handler for cat. It panics with a *[ContextError]
// unless s is a handling section that has not started running.
func (s *Section) Handle(cat *Category, description string, fn HandlerFunc) *Section {
	if s.kind != Handling || s.state != pending {
		contextViolation("handle", Handling)
	}
	s.handlers = append(s.handlers, Handler{Category: cat, Description: description, Func: fn})
	return s
}

// Restart registers a restart under name. It panics with a
// *[ContextError] unless s is a restartable section that has not started
// running.
func (s *Section) Restart(name, description string, fn RestartFunc) *Section {
	if s.kind != Restartable || s.state != pending {
		contextViolation("restart", Restartable)
	}
	s.restarts = append(s.restarts, Restart{Name: name, Description: description, Func: fn})
	return s
}

// Run registers the collected entries and runs body.
//
// The result is body's return values, or the values passed to Leave:
// none gives nil, one gives that value, several give them as []any.
// body receives the arguments of the latest Again call, initially none.
func (s *Section) Run(body func(args ...any) (any, error)) (any, error) {
	if s.state != pending {
		panic("cond: section run twice")
	}
	s.state = running
	e := s.env
	switch s.kind {
	case Handling:
		e.pushHandlers(s.handlers)
		defer e.handlers.pop()
	case Restartable:
		e.pushRestarts(s.restarts)
		defer e.restarts.pop()
	}
	n := len(e.sections)
	e.sections = append(e.sections, s)
	defer func() {
		clear(e.sections[n:])
		e.sections = e.sections[:n]
		s.state = done
	}()

	for {
		result, t, err := s.attempt(body)
		if t == nil {
			return result, err
		}
		if !t.again {
			e.logger.Debug("cond: leave", "section", s.String())
			return leaveResult(t.values), nil
		}
		e.logger.Debug("cond: again", "section", s.String())
		s.args = t.values
	}
}

// attempt runs body once, catching Leave and Again aimed at s.
// Every other panic continues unwinding.
func (s *Section) attempt(body func(args ...any) (any, error)) (result any, t *transfer, err error) {
	defer func() {
		if r := recover(); r != nil {
			if tr, ok := r.(*transfer); ok && tr.id == s.id {
				t = tr
				return
			}
			panic(r)
		}
	}()
	result, err = body(s.args...)
	return result, nil, err
}

// Leave ends the section, making values its result. Leave does not
// return; it unwinds every frame between the caller and s, including
// running handlers and nested sections.
func (s *Section) Leave(values ...any) {
	if s.state != running {
		contextViolation("leave", 0)
	}
	panic(&transfer{id: s.id, values: values})
}

// Again re-runs the section's body with args. Like Leave, it does not
// return.
func (s *Section) Again(args ...any) {
	if s.state != running {
		contextViolation("again", 0)
	}
	panic(&transfer{id: s.id, again: true, values: args})
}

// Leave ends the innermost running section of e.
// It panics with a *[ContextError] if no section is running.
func (e *Env) Leave(values ...any) {
	e.innermost("leave").Leave(values...)
}

// Again re-runs the innermost running section of e.
// It panics with a *[ContextError] if no section is running.
func (e *Env) Again(args ...any) {
	e.innermost("again").Again(args...)
}

func (e *Env) innermost(op string) *Section {
	if len(e.sections) == 0 {
		contextViolation(op, 0)
	}
	return e.sections[len(e.sections)-1]
}

func leaveResult(values []any) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}
