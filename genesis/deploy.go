// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"

	"github.com/vechain/dinostake/builtin"
	"github.com/vechain/dinostake/builtin/access"
	"github.com/vechain/dinostake/builtin/dinopool"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/xenv"
)

// NewGenesis creates the deployment described by cfg. Contracts are set up in
// the order a fresh network needs them: reward token, tracker, collateral,
// vaults and ledgers, then the scheduler.
func NewGenesis(name string, cfg *Config) (*Genesis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var (
		deployer = cfg.Deployer
		supply   = cfg.Token.Supply.Int()
		first    = builtin.PoolAddress(cfg.Pools[0].Name)
	)

	builder := new(Builder).
		Timestamp(cfg.LaunchTime).
		Call("fossil.initialize", deployer, func(c *builtin.Contracts, _ *xenv.Environment) error {
			return c.Fossil().Initialize(cfg.Treasury, supply)
		}).
		Call("utility.initialize", deployer, func(c *builtin.Contracts, env *xenv.Environment) error {
			u := c.Utility()
			if err := u.Initialize(deployer); err != nil {
				return err
			}
			if err := u.SetTrackedContracts(env, builtin.Fossil.Address, first, builtin.Mining.Address); err != nil {
				return err
			}
			return u.UpdatePendingRewards(env, supply, cfg.Emission.PendingRateBasisPoint)
		}).
		Call("dino.initialize", deployer, func(c *builtin.Contracts, _ *xenv.Environment) error {
			return c.Dino().Initialize(deployer)
		})

	for _, item := range cfg.Items {
		builder.Call("dino.mint", deployer, func(c *builtin.Contracts, env *xenv.Environment) error {
			nft := c.Dino()
			for id := item.First; id < item.First+item.Count; id++ {
				if err := nft.Mint(env, item.Owner, dino.TokenID(id)); err != nil {
					return err
				}
			}
			return nil
		})
	}

	for _, p := range cfg.Pools {
		var (
			poolAddr  = builtin.PoolAddress(p.Name)
			vaultAddr = builtin.VaultAddress(p.Name)
			maxBonus  *big.Int
		)
		if p.MaxBonus != nil {
			maxBonus = p.MaxBonus.Int()
		}
		builder.
			Call("rewards.initialize", deployer, func(c *builtin.Contracts, env *xenv.Environment) error {
				return c.Vault(vaultAddr).Initialize(deployer)
			}).
			Call("dinopool.initialize", deployer, func(c *builtin.Contracts, env *xenv.Environment) error {
				pool := c.Pool(poolAddr)
				if err := pool.Initialize(&dinopool.Config{
					Owner:                    deployer,
					Name:                     p.Name,
					Symbol:                   p.Symbol,
					Collateral:               builtin.Dino.Address,
					RewardToken:              builtin.Fossil.Address,
					Vault:                    vaultAddr,
					Tracker:                  builtin.Utility.Address,
					MinLockDuration:          p.MinLockDuration,
					MaxLockDuration:          p.MaxLockDuration,
					MaxBonus:                 maxBonus,
					MaximumNftStakingAllowed: p.MaximumNftStakingAllowed,
				}); err != nil {
					return err
				}
				return pool.SetScheduler(env, builtin.Mining.Address)
			}).
			Call("rewards.setAuthorizedLedger", deployer, func(c *builtin.Contracts, env *xenv.Environment) error {
				return c.Vault(vaultAddr).SetAuthorizedLedger(env, poolAddr, builtin.Fossil.Address)
			})
	}

	builder.Call("mining.initialize", deployer, func(c *builtin.Contracts, env *xenv.Environment) error {
		m := c.Mining()
		if err := m.Initialize(env, builtin.Fossil.Address, cfg.Treasury, builtin.Utility.Address); err != nil {
			return err
		}
		for _, d := range cfg.Distributors {
			if err := m.GrantRole(env, access.RewardDistributorRole, d); err != nil {
				return err
			}
		}
		for _, p := range cfg.Pools {
			if err := m.AddPool(env, builtin.PoolAddress(p.Name), new(big.Int).SetUint64(p.AllocationPoints)); err != nil {
				return err
			}
		}
		return m.SetRewardPerSecond(env, cfg.Emission.RewardPerSecond.Int())
	})

	// the treasury lets the scheduler pull its whole balance
	builder.Call("fossil.approve", cfg.Treasury, func(c *builtin.Contracts, env *xenv.Environment) error {
		return c.Fossil().Approve(env, builtin.Mining.Address, supply)
	})

	return &Genesis{builder, name, cfg}, nil
}

// Deployed reports whether the contracts of a genesis live in c.
func Deployed(c *builtin.Contracts) (bool, error) {
	token, err := c.Mining().RewardToken()
	if err != nil {
		return false, err
	}
	return !token.IsZero(), nil
}
