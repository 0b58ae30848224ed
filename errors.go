// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"errors"
	"fmt"
)

// ErrAborted is wrapped by the error the default abort restart returns.
var ErrAborted = errors.New("cond: aborted")

// ErrReprompt is returned by restarts that only serve the interactive
// chooser (e.g. backtrace); the chooser shows its menu again.
var ErrReprompt = errors.New("cond: reprompt")

// NoRestartError reports an [Env.InvokeRestart] call naming a restart that
// is not registered.
type NoRestartError struct {
	Name string
}

func (e *NoRestartError) Error() string {
	return fmt.Sprintf("cond: restart %q not found in available restarts", e.Name)
}

// ContextError reports Handle, Restart, Leave, Again or Run used outside
// the section state they require. It is a programming error and is raised
// with panic.
type ContextError struct {
	// Op is the offending operation, e.g. "leave" or "restart".
	Op string
	// Kind is the section kind the operation required; 0 means any.
	Kind Kind
}

func (e *ContextError) Error() string {
	switch e.Kind {
	case Handling:
		return "cond: " + e.Op + " called outside of a handling section"
	case Restartable:
		return "cond: " + e.Op + " called outside of a restartable section"
	default:
		return "cond: " + e.Op + " called outside of a handling or restartable section"
	}
}

func contextViolation(op string, kind Kind) {
	panic(&ContextError{Op: op, Kind: kind})
}
