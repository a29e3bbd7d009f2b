// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/log"
)

var logger = log.WithContext("pkg", "solidity")

// ConfigVariable is a numeric setting with a default, overridden once a non zero value is stored in its slot.
type ConfigVariable struct {
	slot         dino.Bytes32
	name         string
	defaultValue uint64
}

func NewConfigVariable(name string, defaultValue uint64) *ConfigVariable {
	return &ConfigVariable{
		slot:         Slot(name),
		name:         name,
		defaultValue: defaultValue,
	}
}

func (c *ConfigVariable) Name() string {
	return c.name
}

func (c *ConfigVariable) Slot() dino.Bytes32 {
	return c.slot
}

func (c *ConfigVariable) Default() uint64 {
	return c.defaultValue
}

// Get reads the stored override, falling back to the default when unset.
func (c *ConfigVariable) Get(ctx *Context) (uint64, error) {
	storage, err := ctx.state.GetStorage(ctx.address, c.slot)
	if err != nil {
		return 0, err
	}
	num := new(big.Int).SetBytes(storage.Bytes())
	if num.Sign() == 0 {
		return c.defaultValue, nil
	}
	if !num.IsUint64() {
		logger.Warn("config value out of range, using default", "slot", c.name)
		return c.defaultValue, nil
	}
	return num.Uint64(), nil
}

func (c *ConfigVariable) Set(ctx *Context, value uint64) {
	ctx.state.SetStorage(ctx.address, c.slot, dino.BytesToBytes32(new(big.Int).SetUint64(value).Bytes()))
	logger.Debug("config value updated", "contract", ctx.address, "slot", c.name, "value", value)
}
