// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

type restartEntry = entry[string, RestartFunc]

// InvokeRestart calls the restart registered under name with args and
// returns its result. Handlers use it to resume at the point where the
// restart was established instead of where the handler was.
//
// A missing restart yields a *[NoRestartError].
func (e *Env) InvokeRestart(name string, args ...any) (result any, err error) {
	r := e.restarts.top().lookup(name)
	if r == nil {
		err = &NoRestartError{Name: name}
		e.logger.Debug("cond: restart", "restart", name, "err", err)
		e.observer.ObserveRestart(name, err)
		return nil, err
	}
	defer func() {
		e.logger.Debug("cond: restart", "restart", name, "err", err)
		e.observer.ObserveRestart(name, err)
	}()
	return r.action(args...)
}

// FindRestart returns the restart currently registered under name.
func (e *Env) FindRestart(name string) (Restart, bool) {
	r := e.restarts.top().lookup(name)
	if r == nil {
		return Restart{}, false
	}
	return restartOf(r), true
}

// AvailableRestarts returns a snapshot of the restarts in effect, in the
// order they were first established, outermost first.
func (e *Env) AvailableRestarts() []Restart {
	top := e.restarts.top()
	out := make([]Restart, len(top.order))
	for i, r := range top.order {
		out[i] = restartOf(r)
	}
	return out
}

func restartOf(r *restartEntry) Restart {
	return Restart{Name: r.key, Description: r.description, Func: r.action}
}
