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

var (
	owner = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000a3")
)

const (
	defaultLiquidity = 10_000_000
	defaultYes       = 5000
	defaultFee       = 10
	defaultTitle     = "Will it rain in Lisbon tomorrow?"
	startingBalance  = 1_000_000_000_000
)

func u(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// newTestMarket returns an initialized market whose test accounts are funded.
func newTestMarket(t *testing.T) (*PredictionMarket, *statedb.StateDB) {
	t.Helper()

	state := statedb.New(memdb.New())
	p := NewPredictionMarket(ContractAddress, log.NewTestLogger(log.InfoLevel))
	require.NoError(t, p.Initialize(state, owner))

	for _, addr := range []common.Address{owner, alice, bob} {
		state.AddBalance(addr, u(startingBalance), tracing.BalanceChangeTransfer)
	}
	state.Finalise()
	return p, state
}

// createDefaultMarket opens a 10M 50/50 market with a 0.1% fee.
func createDefaultMarket(t *testing.T, p *PredictionMarket, state *statedb.StateDB) uint64 {
	t.Helper()

	id, err := p.CreateMarket(state, owner, u(defaultLiquidity), defaultYes, defaultFee, defaultTitle)
	require.NoError(t, err)
	return id
}

// requirePoolInvariant checks yesPool + noPool == totalLpTokens and, while
// the market is open, that each pool covers the tokens held on its side.
func requirePoolInvariant(t *testing.T, p *PredictionMarket, state *statedb.StateDB, id uint64) {
	t.Helper()

	m, err := p.GetMarket(state, id)
	require.NoError(t, err)
	sum := new(uint256.Int).Add(m.YesPool, m.NoPool)
	require.Equal(t, m.TotalLPTokens.String(), sum.String(), "pool invariant broken")
	if !m.Resolved {
		require.False(t, m.YesPool.Lt(m.YesSupply), "yes pool %s below supply %s", m.YesPool, m.YesSupply)
		require.False(t, m.NoPool.Lt(m.NoSupply), "no pool %s below supply %s", m.NoPool, m.NoSupply)
	}
}

// requireCustody checks the contract holds exactly the pools and fees of
// the given markets.
func requireCustody(t *testing.T, p *PredictionMarket, state *statedb.StateDB, ids ...uint64) {
	t.Helper()

	expected := new(uint256.Int)
	for _, id := range ids {
		m, err := p.GetMarket(state, id)
		require.NoError(t, err)
		expected.Add(expected, m.TotalLPTokens)
		expected.Add(expected, m.FeesCollected)
	}
	require.Equal(t, expected.String(), p.ContractBalance(state).String())
}

func balanceOf(state *statedb.StateDB, addr common.Address) uint64 {
	return state.GetBalance(addr).Uint64()
}
