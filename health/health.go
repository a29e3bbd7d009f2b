// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health reports whether rewards keep being distributed.
package health

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type Distribution struct {
	LedgerTime            uint64     `json:"ledgerTime"`
	DistributionTimestamp *time.Time `json:"distributionTimestamp"`
}

type Status struct {
	Healthy      bool          `json:"healthy"`
	Distribution *Distribution `json:"distribution"`
	Bootstrapped bool          `json:"bootstrapped"`
}

type Health struct {
	lock             sync.RWMutex
	clock            clockwork.Clock
	maxIdle          time.Duration
	lastDistribution time.Time
	ledgerTime       uint64
	bootstrapped     bool
}

// New creates a health tracker that turns unhealthy when no distribution
// happened for longer than maxIdle.
func New(clock clockwork.Clock, maxIdle time.Duration) *Health {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Health{clock: clock, maxIdle: maxIdle}
}

// NewDistribution records a successful distribution at ledgerTime.
func (h *Health) NewDistribution(ledgerTime uint64) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastDistribution = h.clock.Now()
	h.ledgerTime = ledgerTime
}

func (h *Health) BootstrapStatus(bootstrapped bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.bootstrapped = bootstrapped
}

func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	distribution := &Distribution{LedgerTime: h.ledgerTime}
	if !h.lastDistribution.IsZero() {
		ts := h.lastDistribution
		distribution.DistributionTimestamp = &ts
	}

	healthy := h.bootstrapped &&
		!h.lastDistribution.IsZero() &&
		h.clock.Since(h.lastDistribution) <= h.maxIdle

	return &Status{
		Healthy:      healthy,
		Distribution: distribution,
		Bootstrapped: h.bootstrapped,
	}, nil
}
