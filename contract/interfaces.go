// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the interfaces a host EVM provides to stateful
// precompiled contracts, and the interfaces those contracts expose back.
package contract

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	ethtypes "github.com/luxfi/geth/core/types"

	"github.com/parsdao/predict/precompileconfig"
)

// StateDB is the subset of the EVM state a precompile may touch.
type StateDB interface {
	GetState(addr common.Address, key common.Hash) common.Hash
	SetState(addr common.Address, key common.Hash, value common.Hash) common.Hash

	GetBalance(addr common.Address) *uint256.Int
	AddBalance(addr common.Address, amount *uint256.Int, reason tracing.BalanceChangeReason) uint256.Int
	SubBalance(addr common.Address, amount *uint256.Int, reason tracing.BalanceChangeReason) uint256.Int

	Exist(addr common.Address) bool
	CreateAccount(addr common.Address)

	AddLog(log *ethtypes.Log)

	Snapshot() int
	RevertToSnapshot(id int)
}

// BlockContext exposes the block being executed.
type BlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// ConfigurationBlockContext is the block context available while a
// precompile is being configured at activation.
type ConfigurationBlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// AccessibleState is handed to Run on every invocation.
type AccessibleState interface {
	GetStateDB() StateDB
	GetBlockContext() BlockContext
}

// StatefulPrecompiledContract is the entry point the EVM calls.
type StatefulPrecompiledContract interface {
	Run(
		accessibleState AccessibleState,
		caller common.Address,
		addr common.Address,
		input []byte,
		suppliedGas uint64,
		readOnly bool,
	) (ret []byte, remainingGas uint64, err error)
}

// Configurator builds and applies a precompile's config.
type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(
		chainConfig precompileconfig.ChainConfig,
		cfg precompileconfig.Config,
		state StateDB,
		blockContext ConfigurationBlockContext,
	) error
}
