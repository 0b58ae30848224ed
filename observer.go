// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

// Outcome classifies how a signal ended.
type Outcome uint8

const (
	// Handled: a handler ran and returned nil.
	Handled Outcome = iota
	// Declined: a handler ran and returned an error.
	Declined
	// Unwound: a handler left through Leave, Again or a panic.
	Unwound
	// Unhandled: no handler matched.
	Unhandled
)

func (o Outcome) String() string {
	switch o {
	case Handled:
		return "handled"
	case Declined:
		return "declined"
	case Unwound:
		return "unwound"
	case Unhandled:
		return "unhandled"
	}
	return "unknown"
}

// Observer receives signal and restart events from an [Env].
// Calls happen synchronously on the env's goroutine.
type Observer interface {
	// ObserveSignal is called once per signal, after the handler finished.
	ObserveSignal(c *Condition, outcome Outcome)
	// ObserveRestart is called after a restart ran, or failed to be found.
	ObserveRestart(name string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveSignal(*Condition, Outcome) {}
func (nopObserver) ObserveRestart(string, error)      {}
