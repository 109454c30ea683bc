// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/parsdao/predict/contract"
	"github.com/parsdao/predict/statedb"
)

const testGas uint64 = 1_000_000

func packCall(t *testing.T, name string, args ...interface{}) []byte {
	t.Helper()

	input, err := MarketABI.Pack(name, args...)
	require.NoError(t, err)
	return input
}

func call(t *testing.T, p *PredictionMarket, state *statedb.StateDB, caller common.Address, readOnly bool, name string, args ...interface{}) ([]interface{}, uint64, error) {
	t.Helper()

	ret, remaining, err := p.Run(statedb.NewAccessibleState(state), caller, p.Address(), packCall(t, name, args...), testGas, readOnly)
	if err != nil {
		return nil, remaining, err
	}
	values, unpackErr := MarketABI.Unpack(name, ret)
	require.NoError(t, unpackErr)
	return values, remaining, nil
}

func TestRunTradingFlow(t *testing.T) {
	require := require.New(t)

	p, state := newTestMarket(t)

	values, remaining, err := call(t, p, state, owner, false, "createMarket",
		big.NewInt(defaultLiquidity), big.NewInt(defaultYes), big.NewInt(defaultFee), defaultTitle)
	require.NoError(err)
	require.Equal(testGas-GasCreateMarket, remaining)
	require.Equal(uint64(1), bigArg(values[0]))
	id := big.NewInt(1)

	values, remaining, err = call(t, p, state, alice, false, "swapStxToYes", id, big.NewInt(1_000_000))
	require.NoError(err)
	require.Equal(testGas-GasSwap, remaining)
	require.Equal(uint64(454_132), bigArg(values[0]))

	values, _, err = call(t, p, state, alice, true, "getUserPosition", id, alice)
	require.NoError(err)
	require.Equal(uint64(454_132), bigArg(values[0]))
	require.Zero(bigArg(values[1]))

	values, _, err = call(t, p, state, bob, false, "addLiquidity", id, big.NewInt(500_000))
	require.NoError(err)
	require.Equal(uint64(500_000), bigArg(values[0]))

	values, remaining, err = call(t, p, state, bob, false, "removeLiquidity", id, big.NewInt(100_000))
	require.NoError(err)
	require.Equal(testGas-GasRemoveLiquidity, remaining)
	require.Equal(uint64(100_000), bigArg(values[0]))

	values, _, err = call(t, p, state, alice, false, "swapYesToStx", id, big.NewInt(454_132))
	require.NoError(err)
	require.Positive(bigArg(values[0]))

	values, _, err = call(t, p, state, owner, false, "resolveMarket", id, false)
	require.NoError(err)
	require.Equal(true, values[0])

	values, _, err = call(t, p, state, owner, false, "claimWinnings", id)
	require.NoError(err)
	require.Positive(bigArg(values[0]))

	values, _, err = call(t, p, state, owner, false, "claimFees", id)
	require.NoError(err)
	require.Positive(bigArg(values[0]))

	requirePoolInvariant(t, p, state, 1)
	requireCustody(t, p, state, 1)
}

func TestRunViews(t *testing.T) {
	require := require.New(t)

	p, state := newTestMarket(t)
	createDefaultMarket(t, p, state)
	id := big.NewInt(1)

	values, remaining, err := call(t, p, state, alice, true, "getMarket", id)
	require.NoError(err)
	require.Equal(testGas-GasRead, remaining)
	require.Len(values, 11)
	require.Equal(uint64(5_000_000), bigArg(values[0]))
	require.Equal(uint64(5_000_000), bigArg(values[1]))
	require.Equal(uint64(defaultLiquidity), bigArg(values[2]))
	require.Equal(uint64(defaultLiquidity), bigArg(values[3]))
	require.Equal(uint64(defaultFee), bigArg(values[4]))
	require.Zero(bigArg(values[5]))
	require.Equal(false, values[6])
	require.Equal(false, values[7])
	require.Equal(owner, values[9])
	require.Equal(defaultTitle, values[10])

	values, _, err = call(t, p, state, alice, true, "getMarketDetails", id)
	require.NoError(err)
	require.Len(values, 9)
	require.Equal(uint64(defaultLiquidity), bigArg(values[2]))
	require.Equal(uint64(defaultLiquidity), bigArg(values[3]))
	require.Equal(uint64(25_000_000_000_000), bigArg(values[4]))
	require.Equal(uint64(defaultFee), bigArg(values[5]))

	values, _, err = call(t, p, state, alice, true, "getTitle", id)
	require.NoError(err)
	require.Equal(defaultTitle, values[0])

	values, _, err = call(t, p, state, alice, true, "getTotalMarkets")
	require.NoError(err)
	require.Equal(uint64(1), bigArg(values[0]))

	values, _, err = call(t, p, state, alice, true, "getUserLp", id, owner)
	require.NoError(err)
	require.Equal(uint64(defaultLiquidity), bigArg(values[0]))

	values, _, err = call(t, p, state, alice, true, "getLpPositionInfo", id, owner)
	require.NoError(err)
	require.Equal(Precision.Uint64(), bigArg(values[4]))

	values, _, err = call(t, p, state, alice, true, "marketExists", id)
	require.NoError(err)
	require.Equal(true, values[0])

	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	values, _, err = call(t, p, state, alice, true, "marketExists", huge)
	require.NoError(err)
	require.Equal(false, values[0])

	values, _, err = call(t, p, state, alice, true, "isMarketResolved", id)
	require.NoError(err)
	require.Equal(false, values[0])

	values, _, err = call(t, p, state, alice, true, "calculateK", id)
	require.NoError(err)
	require.Equal(uint64(25_000_000_000_000), bigArg(values[0]))

	values, _, err = call(t, p, state, alice, true, "getContractBalance")
	require.NoError(err)
	require.Equal(uint64(defaultLiquidity), bigArg(values[0]))

	values, _, err = call(t, p, state, alice, true, "getIsPaused")
	require.NoError(err)
	require.Equal(false, values[0])

	values, _, err = call(t, p, state, alice, true, "getOwner")
	require.NoError(err)
	require.Equal(owner, values[0])

	// trading keeps the two totals in step
	_, err = p.SwapStxToYes(state, bob, 1, u(1_000_000))
	require.NoError(err)
	values, _, err = call(t, p, state, alice, true, "getMarketDetails", id)
	require.NoError(err)
	require.Equal(uint64(10_999_000), bigArg(values[2]))
	require.Equal(uint64(10_999_000), bigArg(values[3]))
}

func TestRunReadOnly(t *testing.T) {
	require := require.New(t)

	p, state := newTestMarket(t)
	createDefaultMarket(t, p, state)

	for _, name := range []string{"swapStxToYes", "addLiquidity"} {
		_, remaining, err := call(t, p, state, alice, true, name, big.NewInt(1), big.NewInt(1_000))
		require.ErrorIs(err, contract.ErrWriteProtection, name)
		require.Equal(testGas-methods[name].gas, remaining)
	}
	_, _, err := call(t, p, state, owner, true, "togglePause")
	require.ErrorIs(err, contract.ErrWriteProtection)
	require.False(p.IsPaused(state))
	requireCustody(t, p, state, 1)
}

func TestRunGas(t *testing.T) {
	require := require.New(t)

	p, state := newTestMarket(t)
	input := packCall(t, "createMarket", big.NewInt(defaultLiquidity), big.NewInt(defaultYes), big.NewInt(defaultFee), defaultTitle)

	_, remaining, err := p.Run(statedb.NewAccessibleState(state), owner, p.Address(), input, GasCreateMarket-1, false)
	require.ErrorIs(err, contract.ErrOutOfGas)
	require.Zero(remaining)
	require.Zero(p.GetTotalMarkets(state))

	_, remaining, err = p.Run(statedb.NewAccessibleState(state), owner, p.Address(), input, GasCreateMarket, false)
	require.NoError(err)
	require.Zero(remaining)
	require.Equal(uint64(1), p.GetTotalMarkets(state))
}

func TestRunUnknownMethod(t *testing.T) {
	require := require.New(t)

	p, state := newTestMarket(t)
	for _, input := range [][]byte{nil, {0x01, 0x02}, {0xde, 0xad, 0xbe, 0xef}} {
		ret, remaining, err := p.Run(statedb.NewAccessibleState(state), alice, p.Address(), input, testGas, false)
		require.ErrorIs(err, ErrUnknownMethod)
		require.Nil(ret)
		require.Equal(testGas, remaining)
	}
}

func TestRunRevertData(t *testing.T) {
	p, state := newTestMarket(t)
	createDefaultMarket(t, p, state)
	id := big.NewInt(1)
	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	tooBig := new(big.Int).Lsh(big.NewInt(1), 128)

	tests := []struct {
		name   string
		caller common.Address
		method string
		args   []interface{}
		err    error
	}{
		{"not owner", alice, "resolveMarket", []interface{}{id, true}, ErrNotAuthorized},
		{"missing market", alice, "getMarket", []interface{}{big.NewInt(2)}, ErrMarketNotFound},
		{"unallocatable id", alice, "swapStxToNo", []interface{}{huge, big.NewInt(10)}, ErrMarketNotFound},
		{"zero amount", alice, "swapStxToYes", []interface{}{id, big.NewInt(0)}, ErrInvalidAmount},
		{"odds out of range", owner, "createMarket", []interface{}{big.NewInt(10), huge, big.NewInt(0), "x"}, ErrInvalidOdds},
		{"fee out of range", owner, "createMarket", []interface{}{big.NewInt(10), big.NewInt(defaultYes), huge, "x"}, ErrInvalidFee},
		{"pool overflow", alice, "addLiquidity", []interface{}{id, new(big.Int).Sub(tooBig, big.NewInt(1))}, ErrArithmeticOverflow},
		{"no fees", owner, "claimFees", []interface{}{id}, ErrNoFeesToClaim},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			input := packCall(t, test.method, test.args...)
			ret, _, err := p.Run(statedb.NewAccessibleState(state), test.caller, p.Address(), input, testGas, false)
			require.ErrorIs(err, test.err)

			expected, packErr := MarketABI.PackError("MarketError", new(big.Int).SetUint64(ErrorCode(test.err)))
			require.NoError(packErr)
			require.Equal(expected, ret)
		})
	}
	requireCustody(t, p, state, 1)
}
