// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/dinostake/dino"
)

// DevAccount account for development.
type DevAccount struct {
	Address    dino.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns the well known development accounts.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{dino.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevConfig is the development deployment: one collateral ledger, a billion
// reward tokens in the treasury and 5e14 tokens emitted per second.
// The deployer doubles as treasury and distributor, the second account holds 20 items.
func DevConfig() *Config {
	var (
		accs     = DevAccounts()
		deployer = accs[0].Address
		supply   = new(big.Int).Mul(big.NewInt(1_000_000_000), dino.BaseUnit)
	)
	return &Config{
		LaunchTime:   1526400000,
		Deployer:     deployer,
		Treasury:     deployer,
		Distributors: []dino.Address{deployer},
		Token: TokenConfig{
			Supply: NewHexOrDecimal256(supply),
		},
		Emission: EmissionConfig{
			RewardPerSecond:       NewHexOrDecimal256(big.NewInt(5e14)),
			PendingRateBasisPoint: 1,
		},
		Pools: []PoolConfig{{
			Name:                     "Staked Dino Token",
			Symbol:                   "SDT",
			MinLockDuration:          dino.DefaultMinLockDuration,
			MaxLockDuration:          dino.DefaultMaxLockDuration,
			MaxBonus:                 NewHexOrDecimal256(dino.DefaultMaxBonus()),
			MaximumNftStakingAllowed: dino.DefaultMaximumNftStakingAllowed,
			AllocationPoints:         100,
		}},
		Items: []ItemConfig{{Owner: accs[1].Address, First: 0, Count: 20}},
	}
}

// NewDevnet create genesis for development.
func NewDevnet() *Genesis {
	g, err := NewGenesis("devnet", DevConfig())
	if err != nil {
		panic(err)
	}
	return g
}
