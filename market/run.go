// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/parsdao/predict/contract"
)

var _ contract.StatefulPrecompiledContract = (*PredictionMarket)(nil)

// Gas costs
const (
	GasCreateMarket    uint64 = 60_000
	GasAddLiquidity    uint64 = 40_000
	GasRemoveLiquidity uint64 = 40_000
	GasSwap            uint64 = 35_000
	GasResolveMarket   uint64 = 20_000
	GasClaimWinnings   uint64 = 30_000
	GasClaimFees       uint64 = 20_000
	GasTogglePause     uint64 = 10_000
	GasRead            uint64 = 2_500
)

type runFunc func(p *PredictionMarket, state contract.StateDB, caller common.Address, args []interface{}) ([]interface{}, error)

type methodEntry struct {
	gas  uint64
	view bool
	run  runFunc
}

var methods = map[string]methodEntry{
	"createMarket":       {GasCreateMarket, false, runCreateMarket},
	"addLiquidity":       {GasAddLiquidity, false, runAddLiquidity},
	"removeLiquidity":    {GasRemoveLiquidity, false, runRemoveLiquidity},
	"swapStxToYes":       {GasSwap, false, runBuy(true)},
	"swapStxToNo":        {GasSwap, false, runBuy(false)},
	"swapYesToStx":       {GasSwap, false, runSell(true)},
	"swapNoToStx":        {GasSwap, false, runSell(false)},
	"resolveMarket":      {GasResolveMarket, false, runResolveMarket},
	"claimWinnings":      {GasClaimWinnings, false, runClaimWinnings},
	"claimFees":          {GasClaimFees, false, runClaimFees},
	"togglePause":        {GasTogglePause, false, runTogglePause},
	"getMarket":          {GasRead, true, runGetMarket},
	"getMarketDetails":   {GasRead, true, runGetMarketDetails},
	"getTitle":           {GasRead, true, runGetTitle},
	"getTotalMarkets":    {GasRead, true, runGetTotalMarkets},
	"getUserPosition":    {GasRead, true, runGetUserPosition},
	"getUserLp":          {GasRead, true, runGetUserLP},
	"getLpPositionInfo":  {GasRead, true, runGetLPPositionInfo},
	"marketExists":       {GasRead, true, runMarketExists},
	"isMarketResolved":   {GasRead, true, runIsMarketResolved},
	"calculateK":         {GasRead, true, runCalculateK},
	"getContractBalance": {GasRead, true, runGetContractBalance},
	"getIsPaused":        {GasRead, true, runGetIsPaused},
	"getOwner":           {GasRead, true, runGetOwner},
}

// Run executes the precompile. Failures carrying a market error code are
// returned together with an ABI encoded MarketError(code) revert payload.
func (p *PredictionMarket) Run(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	input []byte,
	suppliedGas uint64,
	readOnly bool,
) (ret []byte, remainingGas uint64, err error) {
	method, data, err := MarketABI.MethodBySelector(input)
	if err != nil {
		return nil, suppliedGas, fmt.Errorf("%w: %v", ErrUnknownMethod, err)
	}
	entry, ok := methods[method.Name]
	if !ok {
		return nil, suppliedGas, fmt.Errorf("%w: %s", ErrUnknownMethod, method.Name)
	}

	remainingGas, err = contract.DeductGas(suppliedGas, entry.gas)
	if err != nil {
		return nil, 0, err
	}
	if readOnly && !entry.view {
		return nil, remainingGas, contract.ErrWriteProtection
	}

	args, err := MarketABI.UnpackInput(method.Name, data, false)
	if err != nil {
		return nil, remainingGas, fmt.Errorf("unpacking %s input: %w", method.Name, err)
	}

	results, err := entry.run(p, accessibleState.GetStateDB(), caller, args)
	if err != nil {
		return revertData(err), remainingGas, err
	}

	ret, err = MarketABI.PackOutput(method.Name, results...)
	if err != nil {
		return nil, remainingGas, fmt.Errorf("packing %s output: %w", method.Name, err)
	}
	return ret, remainingGas, nil
}

// revertData encodes err as MarketError(code), or nil for uncoded errors.
func revertData(err error) []byte {
	code := ErrorCode(err)
	if code == 0 {
		return nil
	}
	data, packErr := MarketABI.PackError("MarketError", new(big.Int).SetUint64(code))
	if packErr != nil {
		return nil
	}
	return data
}

// =========================================================================
// Argument decoding
// =========================================================================

// argID converts a uint128 market id. Ids that do not fit in uint64 were
// never allocated.
func argID(v interface{}) (uint64, error) {
	b := v.(*big.Int)
	if !b.IsUint64() {
		return 0, ErrMarketNotFound
	}
	return b.Uint64(), nil
}

func argAmount(v interface{}) (*uint256.Int, error) {
	z, overflow := uint256.FromBig(v.(*big.Int))
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return u128(z)
}

// argSmall converts a uint128 parameter that is only valid in a small
// range, failing with invalid when it cannot fit in uint64.
func argSmall(v interface{}, invalid error) (uint64, error) {
	b := v.(*big.Int)
	if !b.IsUint64() {
		return 0, invalid
	}
	return b.Uint64(), nil
}

func idAndAmount(args []interface{}) (uint64, *uint256.Int, error) {
	id, err := argID(args[0])
	if err != nil {
		return 0, nil, err
	}
	amount, err := argAmount(args[1])
	if err != nil {
		return 0, nil, err
	}
	return id, amount, nil
}

func outcomeFields(m *Market) (set bool, outcome bool) {
	if m.Outcome == nil {
		return false, false
	}
	return true, *m.Outcome
}

// =========================================================================
// Mutations
// =========================================================================

func runCreateMarket(p *PredictionMarket, state contract.StateDB, caller common.Address, args []interface{}) ([]interface{}, error) {
	liquidity, err := argAmount(args[0])
	if err != nil {
		return nil, err
	}
	yesPercentage, err := argSmall(args[1], ErrInvalidOdds)
	if err != nil {
		return nil, err
	}
	fee, err := argSmall(args[2], ErrInvalidFee)
	if err != nil {
		return nil, err
	}
	id, err := p.CreateMarket(state, caller, liquidity, yesPercentage, fee, args[3].(string))
	if err != nil {
		return nil, err
	}
	return []interface{}{bigUint(id)}, nil
}

func runAddLiquidity(p *PredictionMarket, state contract.StateDB, caller common.Address, args []interface{}) ([]interface{}, error) {
	id, stx, err := idAndAmount(args)
	if err != nil {
		return nil, err
	}
	lp, err := p.AddLiquidity(state, caller, id, stx)
	if err != nil {
		return nil, err
	}
	return []interface{}{lp.ToBig()}, nil
}

func runRemoveLiquidity(p *PredictionMarket, state contract.StateDB, caller common.Address, args []interface{}) ([]interface{}, error) {
	id, lp, err := idAndAmount(args)
	if err != nil {
		return nil, err
	}
	res, err := p.RemoveLiquidity(state, caller, id, lp)
	if err != nil {
		return nil, err
	}
	return []interface{}{res.LPTokensRemoved.ToBig(), res.STXReturned.ToBig(), res.Yes.ToBig(), res.No.ToBig()}, nil
}

func runBuy(yes bool) runFunc {
	return func(p *PredictionMarket, state contract.StateDB, caller common.Address, args []interface{}) ([]interface{}, error) {
		id, stx, err := idAndAmount(args)
		if err != nil {
			return nil, err
		}
		out, err := p.buy(state, caller, id, stx, yes)
		if err != nil {
			return nil, err
		}
		return []interface{}{out.ToBig()}, nil
	}
}

func runSell(yes bool) runFunc {
	return func(p *PredictionMarket, state contract.StateDB, caller common.Address, args []interface{}) ([]interface{}, error) {
		id, amount, err := idAndAmount(args)
		if err != nil {
			return nil, err
		}
		net, err := p.sell(state, caller, id, amount, yes)
		if err != nil {
			return nil, err
		}
		return []interface{}{net.ToBig()}, nil
	}
}

func runResolveMarket(p *PredictionMarket, state contract.StateDB, caller common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	ok, err := p.ResolveMarket(state, caller, id, args[1].(bool))
	if err != nil {
		return nil, err
	}
	return []interface{}{ok}, nil
}

func runClaimWinnings(p *PredictionMarket, state contract.StateDB, caller common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	payout, err := p.ClaimWinnings(state, caller, id)
	if err != nil {
		return nil, err
	}
	return []interface{}{payout.ToBig()}, nil
}

func runClaimFees(p *PredictionMarket, state contract.StateDB, caller common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	fees, err := p.ClaimFees(state, caller, id)
	if err != nil {
		return nil, err
	}
	return []interface{}{fees.ToBig()}, nil
}

func runTogglePause(p *PredictionMarket, state contract.StateDB, caller common.Address, _ []interface{}) ([]interface{}, error) {
	paused, err := p.TogglePause(state, caller)
	if err != nil {
		return nil, err
	}
	return []interface{}{paused}, nil
}

// =========================================================================
// Views
// =========================================================================

func runGetMarket(p *PredictionMarket, state contract.StateDB, _ common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	m, err := p.GetMarket(state, id)
	if err != nil {
		return nil, err
	}
	set, outcome := outcomeFields(m)
	return []interface{}{
		m.YesPool.ToBig(), m.NoPool.ToBig(), m.TotalLPTokens.ToBig(), m.LPSupply.ToBig(),
		bigUint(m.FeeNumerator), m.FeesCollected.ToBig(),
		m.Resolved, set, outcome, m.Creator, m.Title,
	}, nil
}

func runGetMarketDetails(p *PredictionMarket, state contract.StateDB, _ common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	d, err := p.GetMarketDetails(state, id)
	if err != nil {
		return nil, err
	}
	set, outcome := outcomeFields(d.Market)
	return []interface{}{
		d.YesPool.ToBig(), d.NoPool.ToBig(), d.TotalLiquidity.ToBig(), d.TotalLPTokens.ToBig(), d.K.ToBig(),
		bigUint(d.FeeNumerator), d.Resolved, set, outcome,
	}, nil
}

func runGetTitle(p *PredictionMarket, state contract.StateDB, _ common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	title, err := p.GetTitle(state, id)
	if err != nil {
		return nil, err
	}
	return []interface{}{title}, nil
}

func runGetTotalMarkets(p *PredictionMarket, state contract.StateDB, _ common.Address, _ []interface{}) ([]interface{}, error) {
	return []interface{}{bigUint(p.GetTotalMarkets(state))}, nil
}

func runGetUserPosition(p *PredictionMarket, state contract.StateDB, _ common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	pos, err := p.GetUserPosition(state, id, args[1].(common.Address))
	if err != nil {
		return nil, err
	}
	return []interface{}{pos.Yes.ToBig(), pos.No.ToBig()}, nil
}

func runGetUserLP(p *PredictionMarket, state contract.StateDB, _ common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	lp, err := p.GetUserLP(state, id, args[1].(common.Address))
	if err != nil {
		return nil, err
	}
	return []interface{}{lp.ToBig()}, nil
}

func runGetLPPositionInfo(p *PredictionMarket, state contract.StateDB, _ common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	info, err := p.GetLPPositionInfo(state, id, args[1].(common.Address))
	if err != nil {
		return nil, err
	}
	return []interface{}{
		info.UserLPTokens.ToBig(), info.TotalLPTokens.ToBig(), info.TotalLiquidity.ToBig(),
		info.LPSupply.ToBig(), info.LPTokenValue.ToBig(), info.PositionValue.ToBig(),
	}, nil
}

func runMarketExists(p *PredictionMarket, state contract.StateDB, _ common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return []interface{}{false}, nil
	}
	return []interface{}{p.MarketExists(state, id)}, nil
}

func runIsMarketResolved(p *PredictionMarket, state contract.StateDB, _ common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	resolved, err := p.IsMarketResolved(state, id)
	if err != nil {
		return nil, err
	}
	return []interface{}{resolved}, nil
}

func runCalculateK(p *PredictionMarket, state contract.StateDB, _ common.Address, args []interface{}) ([]interface{}, error) {
	id, err := argID(args[0])
	if err != nil {
		return nil, err
	}
	k, err := p.CalculateK(state, id)
	if err != nil {
		return nil, err
	}
	return []interface{}{k.ToBig()}, nil
}

func runGetContractBalance(p *PredictionMarket, state contract.StateDB, _ common.Address, _ []interface{}) ([]interface{}, error) {
	return []interface{}{p.ContractBalance(state).ToBig()}, nil
}

func runGetIsPaused(p *PredictionMarket, state contract.StateDB, _ common.Address, _ []interface{}) ([]interface{}, error) {
	return []interface{}{p.IsPaused(state)}, nil
}

func runGetOwner(p *PredictionMarket, state contract.StateDB, _ common.Address, _ []interface{}) ([]interface{}, error) {
	return []interface{}{p.Owner(state)}, nil
}
