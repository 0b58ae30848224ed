// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/cond"
)

func TestEnvIsolation(t *testing.T) {
	env := cond.NewEnv()
	registered := make(chan struct{})
	finished := make(chan struct{})
	var otherErr error

	go func() {
		defer close(finished)
		<-registered
		other := cond.NewEnv()
		otherErr = other.Signalf(BirdError, "elsewhere")
	}()

	handled := false
	err := env.WithHandlers([]cond.Handler{{Category: BirdError, Func: func(*cond.Condition) error {
		handled = true
		return nil
	}}}, func() error {
		close(registered)
		<-finished
		return env.Signalf(BirdError, "here")
	})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Error(t, otherErr, "registrations are not visible to another env")
}

func TestEnvConcurrentSections(t *testing.T) {
	const workers = 8
	var wg sync.WaitGroup
	results := make([]any, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env := cond.NewEnv()
			h := env.Handling().Handle(BirdError, "", func(*cond.Condition) error {
				_, err := env.InvokeRestart("use", i)
				return err
			})
			results[i], _ = h.Run(func(...any) (any, error) {
				r := env.Restartable()
				r.Restart("use", "", func(args ...any) (any, error) {
					r.Leave(args...)
					return nil, nil
				})
				return r.Run(func(...any) (any, error) {
					return nil, env.Signalf(SparrowError, "worker %d", i)
				})
			})
		}()
	}
	wg.Wait()
	for i, v := range results {
		assert.Equal(t, i, v)
	}
}

func TestEnvFork(t *testing.T) {
	var obs outcomeLog
	env := cond.NewEnv(cond.WithObserver(&obs))
	_ = env.WithHandlers([]cond.Handler{{Category: cond.Root, Func: func(*cond.Condition) error { return nil }}}, func() error {
		forked := env.Fork()
		assert.Equal(t, 1, forked.HandlerDepth())
		assert.Error(t, forked.Signalf(RawError, "forked"))
		return nil
	})
	assert.Equal(t, []cond.Outcome{cond.Unhandled}, obs.signals, "the fork shares the observer")
}

func TestEnvContext(t *testing.T) {
	assert.Nil(t, cond.FromContext(context.Background()))

	env := cond.NewEnv()
	ctx := cond.NewContext(context.Background(), env)
	assert.Same(t, env, cond.FromContext(ctx))
}

func TestEnvLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	env := cond.NewEnv(cond.WithLogger(logger))
	assert.Same(t, logger, env.Logger())

	_ = env.Signalf(BirdError, "tweet")
	assert.Contains(t, buf.String(), "outcome=unhandled")
	assert.Contains(t, buf.String(), "category=condition/error/animal/bird")
}

func TestNilHandlerCategoryMatchesEverything(t *testing.T) {
	env := cond.NewEnv()
	var seen []string
	err := env.WithHandlers([]cond.Handler{{Func: func(c *cond.Condition) error {
		seen = append(seen, c.Error())
		return nil
	}}}, func() error {
		return env.Signalf(RawError, "raw")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"raw"}, seen)
}
