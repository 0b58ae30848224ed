// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cond provides conditions and restarts in Go: errors resolved
// without unwinding the call stack.
//
// A condition is signalled with an explicit call. The closest matching
// handler registered by an enclosing scope runs on top of the signalling
// frame, which is still live. The handler may resume the computation by
// invoking a restart that an inner scope offered, pass the condition on to
// an outer handler, or decline by returning an error, which then travels
// back to the signal site like any other Go error.
//
// # Design Philosophy
//
// cond provides:
//   - An explicit execution context ([Env]) per goroutine instead of hidden
//     goroutine-local state
//   - Immutable copy-on-merge registry frames, so leaving a scope restores
//     exactly the previous handlers and restarts
//   - Structured control transfer ([Section.Leave], [Section.Again]) in
//     place of labelled jumps
//   - Unhandled conditions surface as ordinary error returns
//
// # Categories and Conditions
//
// Categories form a single-rooted tree. Handlers are keyed by category and
// match a condition of that category or any descendant:
//
//   - [Category]: Node in the hierarchy; implements error for errors.Is
//   - [NewCategory]: Create a category below a parent
//   - [Root]: Matches everything
//   - [ErrorCategory], [RuntimeCategory]: Plain Go errors and runtime panics
//   - [Condition]: Category, message, payload fields, cause, call stack
//   - [New], [Newf], [Wrap], [AsCondition]: Constructors
//   - [Condition.Decode]: Decode the payload into a struct
//
// # Execution Context
//
//   - [NewEnv]: Fresh context with empty default frames
//   - [Env.Fork]: Fresh context sharing logger and observer
//   - [NewContext], [FromContext]: Carry an Env in a context.Context
//   - [WithLogger], [WithObserver]: Options
//
// # Handlers and Restarts
//
//   - [Env.WithHandlers]: Register handlers for the duration of a body
//   - [Env.WithRestarts]: Register restarts for the duration of a body
//   - [Env.InvokeRestart]: Call a registered restart; [NoRestartError] if absent
//   - [Env.FindRestart], [Env.AvailableRestarts]: Inspect the restarts in effect
//
// Matching picks an exact category match first, then the registered
// category nearest in the condition's ancestor chain. Equal distances go
// to the earliest registration.
//
// # Signalling
//
//   - [Env.Signal]: Signal an error; returns nil if a handler resolved it
//   - [Env.Signalf]: Signal a new condition with a formatted message
//   - [Env.Resignal]: Pass the running handler's condition outward
//   - [Env.ActiveCondition]: The condition the innermost handler is serving
//
// While a handler runs, further signals escalate: the search moves
// outward from the frame that supplied the running handler and never
// picks a running handler again.
//
// # Sections
//
// [Env.Handling] and [Env.Restartable] create a [Section]. Registrations
// are collected with [Section.Handle] or [Section.Restart], then
// [Section.Run] executes the body:
//
//   - [Section.Leave]: End the section with a result (none → nil, one →
//     that value, several → []any)
//   - [Section.Again]: Re-run the body with new arguments
//   - [Env.Leave], [Env.Again]: Target the innermost running section
//
// Misuse panics with a [ContextError].
//
// # Guarded Calls
//
//   - [Env.Guard], [GuardValue]: Signal errors and recovered error panics
//     of ordinary Go code
//
// # Default Policy
//
//   - [NewPolicy]: Interactive restart chooser, logging handler, and the
//     resignal, backtrace and abort restarts
//   - [Env.WithDefaultHandlers]: Run a body under the policy
//   - [Prompter], [LinePrompter]: Input for the chooser
//
// # Example
//
//	var ParseError = cond.NewCategory("parse", nil)
//
//	env := cond.NewEnv()
//	h := env.Handling().Handle(ParseError, "", func(c *cond.Condition) error {
//		_, err := env.InvokeRestart("use-value", 0)
//		return err
//	})
//	total, err := h.Run(func(...any) (any, error) {
//		sum := 0
//		for _, field := range fields {
//			r := env.Restartable()
//			r.Restart("use-value", "Use a replacement value.", func(args ...any) (any, error) {
//				r.Leave(args...)
//				return nil, nil
//			})
//			n, err := r.Run(func(...any) (any, error) {
//				n, err := strconv.Atoi(field)
//				if err != nil {
//					return nil, env.Signal(cond.Wrap(ParseError, err))
//				}
//				return n, nil
//			})
//			if err != nil {
//				return nil, err
//			}
//			sum += n.(int)
//		}
//		return sum, nil
//	})
package cond
