// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package promcond exports condition and restart activity as Prometheus
// metrics through a [cond.Observer].
package promcond

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"code.hybscloud.com/cond"
)

// Collector counts signals by category and outcome and restarts by name
// and outcome. One Collector may observe many envs.
type Collector struct {
	signals  *prometheus.CounterVec
	restarts *prometheus.CounterVec
}

var _ cond.Observer = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cond_signals_total",
			Help: "Conditions signalled, by category and outcome.",
		}, []string{"category", "outcome"}),
		restarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cond_restarts_total",
			Help: "Restarts invoked, by name and outcome.",
		}, []string{"restart", "outcome"}),
	}
	for _, m := range []prometheus.Collector{c.signals, c.restarts} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveSignal implements [cond.Observer].
func (c *Collector) ObserveSignal(cd *cond.Condition, outcome cond.Outcome) {
	c.signals.WithLabelValues(cd.Category().String(), outcome.String()).Inc()
}

// ObserveRestart implements [cond.Observer].
func (c *Collector) ObserveRestart(name string, err error) {
	c.restarts.WithLabelValues(name, restartOutcome(err)).Inc()
}

func restartOutcome(err error) string {
	var missing *cond.NoRestartError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, cond.ErrReprompt):
		return "reprompt"
	case errors.As(err, &missing):
		return "missing"
	default:
		return "error"
	}
}
