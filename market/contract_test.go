// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/parsdao/predict/statedb"
)

// hookState runs onTransfer once, from inside the next balance credit.
type hookState struct {
	*statedb.StateDB
	onTransfer func()
}

func (h *hookState) AddBalance(addr common.Address, amount *uint256.Int, reason tracing.BalanceChangeReason) uint256.Int {
	if h.onTransfer != nil {
		hook := h.onTransfer
		h.onTransfer = nil
		hook()
	}
	return h.StateDB.AddBalance(addr, amount, reason)
}

func TestInitialize(t *testing.T) {
	require := require.New(t)

	state := statedb.New(memdb.New())
	p := NewPredictionMarket(ContractAddress, log.NewTestLogger(log.InfoLevel))

	_, err := p.CreateMarket(state, owner, u(1), defaultYes, defaultFee, defaultTitle)
	require.ErrorIs(err, ErrNotInitialized)

	require.NoError(p.Initialize(state, owner))
	require.ErrorIs(p.Initialize(state, alice), ErrAlreadyInitialized)
	require.Equal(owner, p.Owner(state))
	require.False(p.IsPaused(state))
	require.Zero(p.GetTotalMarkets(state))
	require.Equal(DefaultLimits(), p.getLimits(state))
}

func TestInitializeWithLimits(t *testing.T) {
	require := require.New(t)

	state := statedb.New(memdb.New())
	p := NewPredictionMarket(ContractAddress, log.NewTestLogger(log.InfoLevel))
	limits := Limits{MinYesPercentage: 1000, MaxYesPercentage: 9000, MaxFeeNumerator: 100}
	require.NoError(p.InitializeWithLimits(state, owner, limits, true))
	state.AddBalance(owner, u(startingBalance), tracing.BalanceChangeTransfer)

	_, err := p.CreateMarket(state, owner, u(defaultLiquidity), defaultYes, defaultFee, defaultTitle)
	require.ErrorIs(err, ErrContractPaused)

	paused, err := p.TogglePause(state, owner)
	require.NoError(err)
	require.False(paused)

	_, err = p.CreateMarket(state, owner, u(defaultLiquidity), 999, defaultFee, defaultTitle)
	require.ErrorIs(err, ErrInvalidOdds)
	_, err = p.CreateMarket(state, owner, u(defaultLiquidity), 9001, defaultFee, defaultTitle)
	require.ErrorIs(err, ErrInvalidOdds)
	_, err = p.CreateMarket(state, owner, u(defaultLiquidity), defaultYes, 101, defaultTitle)
	require.ErrorIs(err, ErrInvalidFee)

	_, err = p.CreateMarket(state, owner, u(defaultLiquidity), 1000, 100, defaultTitle)
	require.NoError(err)
}

func TestInitializeRejectsInvalidLimits(t *testing.T) {
	tests := []struct {
		name   string
		limits Limits
	}{
		{"zero minimum", Limits{MinYesPercentage: 0, MaxYesPercentage: 9000, MaxFeeNumerator: 100}},
		{"minimum above maximum", Limits{MinYesPercentage: 6000, MaxYesPercentage: 5000, MaxFeeNumerator: 100}},
		{"full scale maximum", Limits{MinYesPercentage: 100, MaxYesPercentage: BasisPoints, MaxFeeNumerator: 100}},
		{"fee cap above hard cap", Limits{MinYesPercentage: 100, MaxYesPercentage: 9900, MaxFeeNumerator: MaxFeeNumerator + 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			state := statedb.New(memdb.New())
			p := NewPredictionMarket(ContractAddress, log.NewTestLogger(log.InfoLevel))
			require.ErrorIs(p.InitializeWithLimits(state, owner, test.limits, false), errInvalidLimits)

			// nothing was written, so a valid initialization still succeeds
			_, err := p.CreateMarket(state, owner, u(1), defaultYes, defaultFee, defaultTitle)
			require.ErrorIs(err, ErrNotInitialized)
			require.NoError(p.InitializeWithLimits(state, owner, DefaultLimits(), false))
		})
	}
}

func TestTogglePause(t *testing.T) {
	require := require.New(t)

	p, state := newTestMarket(t)
	id := createDefaultMarket(t, p, state)
	_, err := p.SwapStxToYes(state, alice, id, u(1_000_000))
	require.NoError(err)

	_, err = p.TogglePause(state, alice)
	require.ErrorIs(err, ErrNotAuthorized)
	require.False(p.IsPaused(state))

	logs := len(state.Logs())
	paused, err := p.TogglePause(state, owner)
	require.NoError(err)
	require.True(paused)
	require.True(p.IsPaused(state))
	require.Len(state.Logs(), logs+1)
	require.Equal(MarketABI.Events["PauseToggled"].ID, state.Logs()[logs].Topics[0])

	ops := map[string]func() error{
		"create":       func() error { _, err := p.CreateMarket(state, owner, u(100), defaultYes, 0, "x"); return err },
		"add":          func() error { _, err := p.AddLiquidity(state, bob, id, u(100)); return err },
		"remove":       func() error { _, err := p.RemoveLiquidity(state, owner, id, u(100)); return err },
		"buy yes":      func() error { _, err := p.SwapStxToYes(state, bob, id, u(100)); return err },
		"buy no":       func() error { _, err := p.SwapStxToNo(state, bob, id, u(100)); return err },
		"sell yes":     func() error { _, err := p.SwapYesToStx(state, alice, id, u(1)); return err },
		"sell no":      func() error { _, err := p.SwapNoToStx(state, owner, id, u(1)); return err },
		"resolve":      func() error { _, err := p.ResolveMarket(state, owner, id, true); return err },
		"claim":        func() error { _, err := p.ClaimWinnings(state, alice, id); return err },
		"claim fees":   func() error { _, err := p.ClaimFees(state, owner, id); return err },
		"non-owner op": func() error { _, err := p.AddLiquidity(state, alice, 99, u(1)); return err },
	}
	for name, op := range ops {
		require.ErrorIs(op(), ErrContractPaused, name)
	}

	// reads are unaffected
	_, err = p.GetMarket(state, id)
	require.NoError(err)

	paused, err = p.TogglePause(state, owner)
	require.NoError(err)
	require.False(paused)

	_, err = p.AddLiquidity(state, bob, id, u(100))
	require.NoError(err)
	requirePoolInvariant(t, p, state, id)
}

func TestReentrantCallRejected(t *testing.T) {
	require := require.New(t)

	p, base := newTestMarket(t)
	id := createDefaultMarket(t, p, base)
	state := &hookState{StateDB: base}

	var reentryErr error
	state.onTransfer = func() {
		_, reentryErr = p.SwapStxToNo(state, alice, id, u(10))
	}

	out, err := p.SwapStxToYes(state, alice, id, u(1_000_000))
	require.NoError(err)
	require.Equal(uint64(454_132), out.Uint64())
	require.ErrorIs(reentryErr, ErrReentrantCall)

	// the marker is cleared once the outer call returns
	_, err = p.SwapStxToNo(state, alice, id, u(10))
	require.NoError(err)
	requirePoolInvariant(t, p, base, id)
	requireCustody(t, p, base, id)
}

func TestReentrantCallRejectedFromFailingCall(t *testing.T) {
	require := require.New(t)

	p, base := newTestMarket(t)
	id := createDefaultMarket(t, p, base)
	state := &hookState{StateDB: base}

	var reentryErr error
	state.onTransfer = func() {
		_, reentryErr = p.ClaimFees(state, owner, id)
	}
	_, err := p.AddLiquidity(state, bob, id, u(500))
	require.NoError(err)
	require.ErrorIs(reentryErr, ErrReentrantCall)

	// a failed call also releases the guard
	_, err = p.AddLiquidity(state, bob, id, u(0))
	require.ErrorIs(err, ErrInvalidAmount)
	_, err = p.AddLiquidity(state, bob, id, u(500))
	require.NoError(err)
}

func TestFailedMutationReverts(t *testing.T) {
	require := require.New(t)

	p, state := newTestMarket(t)
	id := createDefaultMarket(t, p, state)
	before, err := p.GetMarket(state, id)
	require.NoError(err)
	logs := len(state.Logs())

	err = p.mutate(state, "test", true, func() error {
		m, err := p.getMarket(state, id)
		if err != nil {
			return err
		}
		m.YesPool = u(1)
		p.putMarket(state, m)
		p.setPaused(state, true)
		if err := p.collect(state, alice, u(100)); err != nil {
			return err
		}
		if err := p.emit(state, "WinningsClaimed", bigUint(id), alice, u(1).ToBig()); err != nil {
			return err
		}
		return ErrCalculationFailed
	})
	require.ErrorIs(err, ErrCalculationFailed)

	after, err := p.GetMarket(state, id)
	require.NoError(err)
	require.Equal(before, after)
	require.False(p.IsPaused(state))
	require.Equal(uint64(startingBalance), balanceOf(state, alice))
	require.Len(state.Logs(), logs)
	require.NoError(state.Error())
}
