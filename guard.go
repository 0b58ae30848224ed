// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import "runtime"

// Guard calls fn and routes its failure through the handlers.
//
// A returned error is signalled. A panic whose value is an error is
// recovered and signalled too: runtime errors as a [RuntimeCategory]
// condition, which is also what Guard returns if nothing handles it, and
// other errors through [AsCondition]. Leave, Again, *[ContextError] and
// non-error panic values keep unwinding.
//
// Guard is the bridge for code that fails with ordinary errors: handlers
// see the failure, but fn itself has already returned, so only restarts
// established outside fn can resume.
//
// Example:
//
//	err := env.Guard(func() error {
//	    _, err := strconv.Atoi(field)
//	    return err
//	})
func (e *Env) Guard(fn func() error) error {
	_, err := GuardValue(e, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// GuardValue is [Env.Guard] for functions that also produce a value.
// The zero value is returned alongside any error.
func GuardValue[T any](e *Env, fn func() (T, error)) (T, error) {
	v, failure := recoverError(fn)
	if failure == nil {
		return v, nil
	}
	var zero T
	return zero, e.signal(failure.cond, failure.err)
}

type guardFailure struct {
	cond *Condition
	err  error
}

func recoverError[T any](fn func() (T, error)) (v T, failure *guardFailure) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch x := r.(type) {
		case *transfer, *ContextError:
			panic(r)
		case runtime.Error:
			c := newCondition(RuntimeCategory, "", x, 4)
			failure = &guardFailure{cond: c, err: c}
		case error:
			failure = &guardFailure{cond: asCondition(x, 5), err: x}
		default:
			panic(r)
		}
	}()
	v, err := fn()
	if err != nil {
		return v, &guardFailure{cond: asCondition(err, 4), err: err}
	}
	return v, nil
}
