// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import "fmt"

// Signal raises err as a condition.
//
// The closest matching handler runs on top of the caller's stack; nothing
// is unwound. Signal returns nil when the handler resolved the condition
// and returned, or the handler's error when it declined. When no handler
// matches, err itself is returned, so an unhandled condition propagates
// like any other Go error:
//
//	if err := env.Signal(cond.New(MalformedEntry, line)); err != nil {
//	    return err
//	}
//
// Called while a handler is running, Signal escalates: only handlers
// established outside the running handler's frame, or inside the handler
// itself, are considered, and a running handler is never chosen again.
//
// Signal(nil) is [Env.Resignal].
func (e *Env) Signal(err error) error {
	if err == nil {
		return e.resignal()
	}
	return e.signal(asCondition(err, 4), err)
}

// Signalf signals a new condition of category cat with a formatted message.
func (e *Env) Signalf(cat *Category, format string, args ...any) error {
	c := newCondition(cat, fmt.Sprintf(format, args...), nil, 3)
	return e.signal(c, c)
}

// Resignal passes the condition of the running handler on to the next
// handler out. Outside a handler it signals a fresh [Root] condition.
//
// Example:
//
//	func(c *cond.Condition) error {
//	    log.Print(c)
//	    return env.Resignal() // let an outer handler decide
//	}
func (e *Env) Resignal() error {
	return e.resignal()
}

// ActiveCondition returns the condition of the innermost running handler,
// or nil outside handlers.
func (e *Env) ActiveCondition() *Condition {
	if n := len(e.active); n > 0 {
		return e.active[n-1].cond
	}
	return nil
}

func (e *Env) resignal() error {
	if n := len(e.active); n > 0 {
		a := e.active[n-1]
		return e.signal(a.cond, a.err)
	}
	c := newCondition(Root, "unhandled condition", nil, 4)
	return e.signal(c, c)
}

func (e *Env) signal(c *Condition, err error) error {
	if e.handlers.top().len() == 0 {
		return e.unhandled(c, err)
	}
	if len(e.active) > 0 {
		return e.escalate(c, err)
	}
	if h := findHandler(e.handlers.top(), c.category, nil); h != nil {
		return e.invoke(h, c, err)
	}
	return e.unhandled(c, err)
}

// escalate searches for a handler while other handlers are running.
// Frames are visited newest to oldest. Frames pushed between a running
// handler's frame and the start of that handler belong to the signalling
// code the handler is serving and are skipped; entries registered there
// and the running handlers themselves are invisible everywhere. In a
// running handler's own frame only the entries registered alongside it
// are candidates; inherited entries are matched in the older frames they
// came from, where a closer handler the frame shadowed is still visible.
func (e *Env) escalate(c *Condition, err error) error {
	for i := e.handlers.depth() - 1; i >= 0; i-- {
		if e.hiddenFrame(i) {
			continue
		}
		allow := func(h *handlerEntry) bool { return e.visible(h, i) }
		if h := findHandler(e.handlers.at(i), c.category, allow); h != nil {
			return e.invoke(h, c, err)
		}
	}
	return e.unhandled(c, err)
}

func (e *Env) hiddenFrame(i int) bool {
	for _, a := range e.active {
		if i > a.frame && i < a.base {
			return true
		}
	}
	return false
}

// visible reports whether h may be chosen when searching frame i.
func (e *Env) visible(h *handlerEntry, i int) bool {
	for _, a := range e.active {
		if h == a.entry {
			return false
		}
		if h.origin > a.frame && h.origin < a.base {
			return false
		}
		if i == a.frame && h.origin < a.frame {
			return false
		}
	}
	return true
}

// invoke runs h with an active signal record pushed for its duration.
// The record is anchored at the frame that registered h, which may be
// older than the frame h was found in.
func (e *Env) invoke(h *handlerEntry, c *Condition, err error) error {
	n := len(e.active)
	e.active = append(e.active, activeSignal{
		cond:  c,
		err:   err,
		entry: h,
		frame: h.origin,
		base:  e.handlers.depth(),
	})
	outcome := Unwound
	defer func() {
		clear(e.active[n:])
		e.active = e.active[:n]
		e.logger.Debug("cond: signal", "category", c.category.String(), "handler", h.key.String(), "outcome", outcome.String())
		e.observer.ObserveSignal(c, outcome)
	}()
	if herr := h.action(c); herr != nil {
		outcome = Declined
		return herr
	}
	outcome = Handled
	return nil
}

func (e *Env) unhandled(c *Condition, err error) error {
	e.logger.Debug("cond: signal", "category", c.category.String(), "outcome", Unhandled.String(), "err", err)
	e.observer.ObserveSignal(c, Unhandled)
	return err
}
