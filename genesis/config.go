// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/dinostake/dino"
)

// Config is the deployment described by a genesis file.
type Config struct {
	LaunchTime   uint64         `yaml:"launchTime"`
	Deployer     dino.Address   `yaml:"deployer"`
	Treasury     dino.Address   `yaml:"treasury"`
	Distributors []dino.Address `yaml:"distributors"`

	Token    TokenConfig    `yaml:"token"`
	Emission EmissionConfig `yaml:"emission"`
	Pools    []PoolConfig   `yaml:"pools"`
	Items    []ItemConfig   `yaml:"items"`
}

// TokenConfig is the reward token supply, minted to the treasury.
type TokenConfig struct {
	Supply *HexOrDecimal256 `yaml:"supply"`
}

// EmissionConfig configures the scheduler and the supply tracker.
type EmissionConfig struct {
	RewardPerSecond       *HexOrDecimal256 `yaml:"rewardPerSecond"`
	PendingRateBasisPoint uint64           `yaml:"pendingRateBasisPoints"`
}

// PoolConfig is one staking ledger with its vault.
type PoolConfig struct {
	Name                     string           `yaml:"name"`
	Symbol                   string           `yaml:"symbol"`
	MinLockDuration          uint64           `yaml:"minLockDuration"`
	MaxLockDuration          uint64           `yaml:"maxLockDuration"`
	MaxBonus                 *HexOrDecimal256 `yaml:"maxBonus"`
	MaximumNftStakingAllowed uint64           `yaml:"maximumNftStakingAllowed"`
	AllocationPoints         uint64           `yaml:"allocationPoints"`
}

// ItemConfig mints collateral ids [First, First+Count) to Owner.
type ItemConfig struct {
	Owner dino.Address `yaml:"owner"`
	First uint64       `yaml:"first"`
	Count uint64       `yaml:"count"`
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
type HexOrDecimal256 math.HexOrDecimal256

func NewHexOrDecimal256(v *big.Int) *HexOrDecimal256 {
	return (*HexOrDecimal256)(new(big.Int).Set(v))
}

func (i *HexOrDecimal256) Int() *big.Int {
	if i == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(i))
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalYAML(value *yaml.Node) error {
	bigint, ok := math.ParseBig256(value.Value)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q at line %d", value.Value, value.Line)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (i HexOrDecimal256) MarshalYAML() (any, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// LoadConfig reads a yaml genesis file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks what the contracts would otherwise reject half way through deployment.
func (c *Config) Validate() error {
	if c.Deployer.IsZero() {
		return errors.New("deployer must be set")
	}
	if c.Treasury.IsZero() {
		return errors.New("treasury must be set")
	}
	if c.Token.Supply == nil || c.Token.Supply.Int().Sign() < 1 {
		return errors.New("token supply must be a non-zero integer")
	}
	if c.Emission.PendingRateBasisPoint > dino.BasisPoints.Uint64() {
		return errors.Errorf("pending rate %d above %v basis points", c.Emission.PendingRateBasisPoint, dino.BasisPoints)
	}
	if len(c.Pools) == 0 {
		return errors.New("at least one pool")
	}
	seen := make(map[string]bool)
	for _, p := range c.Pools {
		if p.Name == "" {
			return errors.New("pool name must be set")
		}
		if seen[p.Name] {
			return errors.Errorf("duplicate pool %q", p.Name)
		}
		seen[p.Name] = true
		if p.MinLockDuration > p.MaxLockDuration {
			return errors.Errorf("%s: minimum lock above maximum", p.Name)
		}
	}
	return nil
}
