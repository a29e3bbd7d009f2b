// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New("test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_Wrapf(t *testing.T) {
	err := Wrapf(ErrStillLocked, "token %d", 7)
	assert.Equal(t, "token 7: deposit still locked", err.Error())
	assert.True(t, errors.Is(err, ErrStillLocked))
	assert.False(t, errors.Is(err, ErrNotStaked))
	assert.True(t, IsRevertErr(err))

	wrapped := errors.Wrap(err, "withdraw")
	assert.True(t, IsRevertErr(wrapped))
	assert.True(t, errors.Is(wrapped, ErrStillLocked))
}
