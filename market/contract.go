// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package market implements a binary outcome prediction market as a
// stateful precompile. Each market is a pair of yes/no pools priced by a
// constant-product style AMM, funded by liquidity providers and settled by
// the contract owner once the outcome is known.
package market

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	ethtypes "github.com/luxfi/geth/core/types"
	"github.com/luxfi/log"

	"github.com/parsdao/predict/contract"
)

// PredictionMarket holds no market state itself; everything lives in the
// StateDB under its address.
type PredictionMarket struct {
	address common.Address
	log     log.Logger

	// mu protects allowedFunction
	mu sync.Mutex

	// allowedFunction names the entry point currently executing. Any other
	// entry point invoked while it is set fails with ErrReentrantCall.
	allowedFunction string
}

// NewPredictionMarket returns a contract rooted at address.
func NewPredictionMarket(address common.Address, logger log.Logger) *PredictionMarket {
	if logger == nil {
		logger = log.Root()
	}
	return &PredictionMarket{
		address: address,
		log:     logger,
	}
}

// Address returns the account holding market state and custody.
func (p *PredictionMarket) Address() common.Address {
	return p.address
}

// Initialize sets the owner with the default limits.
func (p *PredictionMarket) Initialize(state contract.StateDB, owner common.Address) error {
	return p.InitializeWithLimits(state, owner, DefaultLimits(), false)
}

// InitializeWithLimits sets the immutable owner, the creation limits and
// the initial pause flag. It may run only once.
func (p *PredictionMarket) InitializeWithLimits(state contract.StateDB, owner common.Address, limits Limits, paused bool) error {
	if p.isInitialized(state) {
		return ErrAlreadyInitialized
	}
	if err := limits.Verify(); err != nil {
		return err
	}
	if !state.Exist(p.address) {
		state.CreateAccount(p.address)
	}

	p.setGlobal(state, ownerSlot, common.BytesToHash(owner.Bytes()))
	p.setNextMarketID(state, 1)
	p.setLimits(state, limits)
	p.setPaused(state, paused)

	var one common.Hash
	one[common.HashLength-1] = 1
	p.setGlobal(state, initializedSlot, one)

	p.log.Info("prediction market initialized",
		"address", p.address,
		"owner", owner,
		"minYes", limits.MinYesPercentage,
		"maxYes", limits.MaxYesPercentage,
		"maxFee", limits.MaxFeeNumerator,
		"paused", paused,
	)
	return nil
}

// =========================================================================
// Guards
// =========================================================================

// enter marks fn as the in-flight entry point. The returned func clears it.
func (p *PredictionMarket) enter(fn string) (func(), error) {
	p.mu.Lock()
	if p.allowedFunction != "" {
		inFlight := p.allowedFunction
		p.mu.Unlock()
		p.log.Debug("reentrant call rejected", "method", fn, "inFlight", inFlight)
		return nil, ErrReentrantCall
	}
	p.allowedFunction = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		p.allowedFunction = ""
		p.mu.Unlock()
	}, nil
}

// mutate runs op as one atomic entry point. Every state change made by op
// is reverted if it fails.
func (p *PredictionMarket) mutate(state contract.StateDB, fn string, pausable bool, op func() error) error {
	release, err := p.enter(fn)
	if err != nil {
		return err
	}
	defer release()

	if !p.isInitialized(state) {
		return ErrNotInitialized
	}
	if pausable && p.isPaused(state) {
		return ErrContractPaused
	}

	snapshot := state.Snapshot()
	if err := op(); err != nil {
		state.RevertToSnapshot(snapshot)
		p.log.Debug("market call reverted", "method", fn, "err", err)
		return err
	}
	return nil
}

func (p *PredictionMarket) requireOwner(state contract.StateDB, caller common.Address) error {
	if caller != p.getOwner(state) {
		return ErrNotAuthorized
	}
	return nil
}

// =========================================================================
// Base asset custody
// =========================================================================

// collect moves amount from user into contract custody.
func (p *PredictionMarket) collect(state contract.StateDB, from common.Address, amount *uint256.Int) error {
	if state.GetBalance(from).Lt(amount) {
		return ErrInsufficientBalance
	}
	state.SubBalance(from, amount, tracing.BalanceChangeTransfer)
	state.AddBalance(p.address, amount, tracing.BalanceChangeTransfer)
	return nil
}

// pay moves amount out of contract custody to user.
func (p *PredictionMarket) pay(state contract.StateDB, to common.Address, amount *uint256.Int) error {
	if state.GetBalance(p.address).Lt(amount) {
		return ErrInsufficientBalance
	}
	state.SubBalance(p.address, amount, tracing.BalanceChangeTransfer)
	state.AddBalance(to, amount, tracing.BalanceChangeTransfer)
	return nil
}

// =========================================================================
// Events
// =========================================================================

// emit appends the named ABI event to the state's logs.
func (p *PredictionMarket) emit(state contract.StateDB, name string, args ...interface{}) error {
	topics, data, err := MarketABI.PackEvent(name, args...)
	if err != nil {
		return fmt.Errorf("%w: packing %s event: %v", ErrCalculationFailed, name, err)
	}
	state.AddLog(&ethtypes.Log{
		Address: p.address,
		Topics:  topics,
		Data:    data,
	})
	return nil
}

func bigUint(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// =========================================================================
// Pause
// =========================================================================

// TogglePause flips the pause flag. Owner only, and allowed while paused.
func (p *PredictionMarket) TogglePause(state contract.StateDB, caller common.Address) (bool, error) {
	var paused bool
	err := p.mutate(state, "toggle-pause", false, func() error {
		if err := p.requireOwner(state, caller); err != nil {
			return err
		}
		paused = !p.isPaused(state)
		p.setPaused(state, paused)
		return p.emit(state, "PauseToggled", caller, paused)
	})
	if err != nil {
		return false, err
	}
	p.log.Info("pause toggled", "paused", paused)
	return paused, nil
}

// IsPaused reports whether mutations are blocked.
func (p *PredictionMarket) IsPaused(state contract.StateDB) bool {
	return p.isPaused(state)
}

// Owner returns the address allowed to create, resolve and pause.
func (p *PredictionMarket) Owner(state contract.StateDB) common.Address {
	return p.getOwner(state)
}

// ContractBalance returns the base asset held in custody across all markets.
func (p *PredictionMarket) ContractBalance(state contract.StateDB) *uint256.Int {
	return state.GetBalance(p.address)
}
