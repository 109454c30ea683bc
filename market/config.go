// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/luxfi/geth/common"

	"github.com/parsdao/predict/precompileconfig"
)

var _ precompileconfig.Config = (*Config)(nil)

var (
	errZeroOwner     = errors.New("owner must be set")
	errInvalidLimits = errors.New("invalid limits")

	validate = validator.New()
)

// Config implements the precompileconfig.Config interface
type Config struct {
	Upgrade precompileconfig.Upgrade `json:"upgrade,omitempty" toml:"upgrade"`

	// Owner may create, resolve and pause markets and claim fees.
	Owner common.Address `json:"owner" toml:"owner"`

	InitiallyPaused bool `json:"initiallyPaused,omitempty" toml:"initially_paused"`

	MinYesPercentage uint64 `json:"minYesPercentage" toml:"min_yes_percentage"`
	MaxYesPercentage uint64 `json:"maxYesPercentage" toml:"max_yes_percentage"`
	MaxFeeNumerator  uint64 `json:"maxFeeNumerator" toml:"max_fee_numerator"`
}

// DefaultConfig returns a config with the default limits and no owner.
func DefaultConfig() *Config {
	limits := DefaultLimits()
	return &Config{
		MinYesPercentage: limits.MinYesPercentage,
		MaxYesPercentage: limits.MaxYesPercentage,
		MaxFeeNumerator:  limits.MaxFeeNumerator,
	}
}

// LoadConfig reads a TOML file over DefaultConfig and verifies it.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Verify(nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Key() string {
	return ConfigKey
}

func (c *Config) Timestamp() *uint64 {
	return c.Upgrade.Timestamp()
}

func (c *Config) IsDisabled() bool {
	return c.Upgrade.Disable
}

func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := cfg.(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) &&
		c.Owner == other.Owner &&
		c.InitiallyPaused == other.InitiallyPaused &&
		c.MinYesPercentage == other.MinYesPercentage &&
		c.MaxYesPercentage == other.MaxYesPercentage &&
		c.MaxFeeNumerator == other.MaxFeeNumerator
}

// Verify checks the limits and requires an owner. Disabling configs carry
// no parameters and always verify.
func (c *Config) Verify(precompileconfig.ChainConfig) error {
	if c.Upgrade.Disable {
		return nil
	}
	if c.Owner == (common.Address{}) {
		return errZeroOwner
	}
	if err := c.Limits().Verify(); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigKey, err)
	}
	return nil
}

// Verify checks that the odds bounds are ordered and strictly inside
// (0, BasisPoints) and that the fee cap does not exceed MaxFeeNumerator.
func (l Limits) Verify() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("%w: %v", errInvalidLimits, err)
	}
	return nil
}

// Limits returns the creation limits carried by the config.
func (c *Config) Limits() Limits {
	return Limits{
		MinYesPercentage: c.MinYesPercentage,
		MaxYesPercentage: c.MaxYesPercentage,
		MaxFeeNumerator:  c.MaxFeeNumerator,
	}
}
