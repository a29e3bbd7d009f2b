// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_NewDistribution(t *testing.T) {
	clock := clockwork.NewFakeClock()
	h := New(clock, time.Minute)

	h.NewDistribution(1000)
	h.BootstrapStatus(true)

	status, err := h.Status()
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(1000), status.Distribution.LedgerTime)
	require.NotNil(t, status.Distribution.DistributionTimestamp)
	assert.Equal(t, clock.Now(), *status.Distribution.DistributionTimestamp)

	clock.Advance(2 * time.Minute)
	status, err = h.Status()
	require.NoError(t, err)
	assert.False(t, status.Healthy)
}

func TestHealth_BootstrapStatus(t *testing.T) {
	h := New(clockwork.NewFakeClock(), time.Minute)
	h.NewDistribution(1)

	status, err := h.Status()
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.False(t, status.Bootstrapped)

	h.BootstrapStatus(true)
	status, err = h.Status()
	require.NoError(t, err)
	assert.True(t, status.Healthy)
}

func TestHealth_NeverDistributed(t *testing.T) {
	h := New(nil, time.Minute)
	h.BootstrapStatus(true)

	status, err := h.Status()
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.Nil(t, status.Distribution.DistributionTimestamp)
}
