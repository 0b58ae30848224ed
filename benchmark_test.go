// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond_test

import (
	"testing"

	"code.hybscloud.com/cond"
)

// BenchmarkSignalUnhandled measures the empty-registry fast path.
func BenchmarkSignalUnhandled(b *testing.B) {
	env := cond.NewEnv()
	c := cond.New(BirdError, "tweet")
	for b.Loop() {
		_ = env.Signal(c)
	}
}

// BenchmarkSignalHandled measures dispatch to an exact match.
func BenchmarkSignalHandled(b *testing.B) {
	env := cond.NewEnv()
	c := cond.New(BirdError, "tweet")
	_ = env.WithHandlers([]cond.Handler{{Category: BirdError, Func: func(*cond.Condition) error { return nil }}}, func() error {
		for b.Loop() {
			_ = env.Signal(c)
		}
		return nil
	})
}

// BenchmarkSignalClosestMatch measures dispatch through the ancestor chain.
func BenchmarkSignalClosestMatch(b *testing.B) {
	env := cond.NewEnv()
	c := cond.New(SparrowError, "chirp")
	hs := []cond.Handler{
		{Category: cond.Root, Func: func(*cond.Condition) error { return nil }},
		{Category: AnimalError, Func: func(*cond.Condition) error { return nil }},
		{Category: DogError, Func: func(*cond.Condition) error { return nil }},
	}
	_ = env.WithHandlers(hs, func() error {
		for b.Loop() {
			_ = env.Signal(c)
		}
		return nil
	})
}

// BenchmarkInvokeRestart measures a restart that returns normally.
func BenchmarkInvokeRestart(b *testing.B) {
	env := cond.NewEnv()
	_ = env.WithRestarts([]cond.Restart{noopRestart("use-value", "")}, func() error {
		for b.Loop() {
			_, _ = env.InvokeRestart("use-value", 1)
		}
		return nil
	})
}

// BenchmarkSectionLeave measures a restart that transfers control out of
// its section.
func BenchmarkSectionLeave(b *testing.B) {
	env := cond.NewEnv()
	for b.Loop() {
		s := env.Restartable()
		_, _ = s.Run(func(...any) (any, error) {
			s.Leave(1)
			return nil, nil
		})
	}
}

// BenchmarkWithHandlers measures frame push and pop.
func BenchmarkWithHandlers(b *testing.B) {
	env := cond.NewEnv()
	hs := []cond.Handler{{Category: BirdError, Func: func(*cond.Condition) error { return nil }}}
	body := func() error { return nil }
	for b.Loop() {
		_ = env.WithHandlers(hs, body)
	}
}
