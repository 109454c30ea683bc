// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the configuration contract shared by all
// precompile modules.
package precompileconfig

import "math/big"

// Config is the json/toml configuration of a single precompile module.
type Config interface {
	// Key returns the key used in json config files to specify this precompile config.
	Key() string
	// Timestamp returns the timestamp at which this precompile should be enabled.
	// nil means the precompile is enabled from genesis.
	Timestamp() *uint64
	// IsDisabled returns true if this network upgrade should disable the precompile.
	IsDisabled() bool
	// Equal returns true if the provided argument configures the same precompile with the same parameters.
	Equal(Config) bool
	// Verify is called on startup and an error is treated as fatal.
	Verify(ChainConfig) error
}

// ChainConfig is the view of the chain configuration available to Verify.
type ChainConfig interface {
	ChainID() *big.Int
}

// Upgrade contains the activation fields shared by every precompile config.
type Upgrade struct {
	BlockTimestamp *uint64 `json:"blockTimestamp" toml:"block_timestamp"`
	Disable        bool    `json:"disable,omitempty" toml:"disable"`
}

// Timestamp returns the timestamp this network upgrade goes into effect.
func (u *Upgrade) Timestamp() *uint64 {
	return u.BlockTimestamp
}

// Equal returns true iff [other] has the same blockTimestamp and has the
// same on value for the Disable flag.
func (u *Upgrade) Equal(other *Upgrade) bool {
	if other == nil {
		return false
	}
	if u.Disable != other.Disable {
		return false
	}
	switch {
	case u.BlockTimestamp == nil && other.BlockTimestamp == nil:
		return true
	case u.BlockTimestamp == nil || other.BlockTimestamp == nil:
		return false
	default:
		return *u.BlockTimestamp == *other.BlockTimestamp
	}
}
