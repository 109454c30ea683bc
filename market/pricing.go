// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/parsdao/predict/contract"
)

// BuyQuote is the result of spending base asset on one outcome side.
type BuyQuote struct {
	Fee *uint256.Int
	// Net is the amount added to the pools after the fee.
	Net *uint256.Int
	// Out is the outcome tokens credited to the buyer.
	Out *uint256.Int
}

// SellQuote is the result of selling outcome tokens back to the pool.
type SellQuote struct {
	// Gross is the pool value of the tokens before the fee.
	Gross *uint256.Int
	Fee   *uint256.Int
	// Net is paid to the seller.
	Net *uint256.Int
}

// ExtractFee splits amount into the fee owed at feeNumerator basis points
// and the remainder.
func ExtractFee(amount *uint256.Int, feeNumerator uint64) (fee, net *uint256.Int, err error) {
	fee, err = mulDiv(amount, uint256.NewInt(feeNumerator), basisPoints)
	if err != nil {
		return nil, nil, err
	}
	net, err = checkedSub(amount, fee)
	if err != nil {
		return nil, nil, err
	}
	return fee, net, nil
}

// QuoteBuy prices a purchase of stx against a side holding pool within a
// market of the given total.
//
//	out = net * pool / (total + net)
func QuoteBuy(pool, total, stx *uint256.Int, feeNumerator uint64) (*BuyQuote, error) {
	if stx.IsZero() {
		return nil, ErrInvalidAmount
	}
	fee, net, err := ExtractFee(stx, feeNumerator)
	if err != nil {
		return nil, err
	}
	denom, err := checkedAdd(total, net)
	if err != nil {
		return nil, err
	}
	out, err := mulDiv(net, pool, denom)
	if err != nil {
		return nil, err
	}
	if out.IsZero() {
		return nil, ErrExcessiveSlippage
	}
	return &BuyQuote{Fee: fee, Net: net, Out: out}, nil
}

// QuoteSell prices a sale of amount outcome tokens from a side holding pool.
//
//	gross = amount * total / pool
func QuoteSell(pool, total, amount *uint256.Int, feeNumerator uint64) (*SellQuote, error) {
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	if !amount.Lt(pool) {
		return nil, ErrExcessiveSlippage
	}
	gross, err := mulDiv(amount, total, pool)
	if err != nil {
		return nil, err
	}
	fee, net, err := ExtractFee(gross, feeNumerator)
	if err != nil {
		return nil, err
	}
	return &SellQuote{Gross: gross, Fee: fee, Net: net}, nil
}

// openMarket loads id and requires it to be unresolved.
func (p *PredictionMarket) openMarket(state contract.StateDB, id uint64) (*Market, error) {
	m, err := p.getMarket(state, id)
	if err != nil {
		return nil, err
	}
	if m.Resolved {
		return nil, ErrMarketResolved
	}
	return m, nil
}

// SwapStxToYes buys yes tokens with stx base asset.
func (p *PredictionMarket) SwapStxToYes(state contract.StateDB, caller common.Address, id uint64, stx *uint256.Int) (*uint256.Int, error) {
	return p.buy(state, caller, id, stx, true)
}

// SwapStxToNo buys no tokens with stx base asset.
func (p *PredictionMarket) SwapStxToNo(state contract.StateDB, caller common.Address, id uint64, stx *uint256.Int) (*uint256.Int, error) {
	return p.buy(state, caller, id, stx, false)
}

// SwapYesToStx sells yes tokens for base asset.
func (p *PredictionMarket) SwapYesToStx(state contract.StateDB, caller common.Address, id uint64, amount *uint256.Int) (*uint256.Int, error) {
	return p.sell(state, caller, id, amount, true)
}

// SwapNoToStx sells no tokens for base asset.
func (p *PredictionMarket) SwapNoToStx(state contract.StateDB, caller common.Address, id uint64, amount *uint256.Int) (*uint256.Int, error) {
	return p.sell(state, caller, id, amount, false)
}

func (p *PredictionMarket) buy(state contract.StateDB, caller common.Address, id uint64, stx *uint256.Int, yes bool) (*uint256.Int, error) {
	method, event := "swap-stx-to-no", "SwapToNo"
	if yes {
		method, event = "swap-stx-to-yes", "SwapToYes"
	}

	var quote *BuyQuote
	err := p.mutate(state, method, true, func() error {
		m, err := p.openMarket(state, id)
		if err != nil {
			return err
		}
		if stx.IsZero() {
			return ErrInvalidAmount
		}
		if state.GetBalance(caller).Lt(stx) {
			return ErrInsufficientBalance
		}

		side, other := m.pool(yes)
		quote, err = QuoteBuy(side, m.TotalLPTokens, stx, m.FeeNumerator)
		if err != nil {
			return err
		}

		// The net deposit is split between both pools so that their sum
		// keeps matching TotalLPTokens.
		counter, err := checkedSub(quote.Net, quote.Out)
		if err != nil {
			return err
		}
		if side, err = checkedAdd(side, quote.Out); err != nil {
			return err
		}
		if other, err = checkedAdd(other, counter); err != nil {
			return err
		}
		if m.TotalLPTokens, err = checkedAdd(m.TotalLPTokens, quote.Net); err != nil {
			return err
		}
		if m.FeesCollected, err = checkedAdd(m.FeesCollected, quote.Fee); err != nil {
			return err
		}
		m.setPools(yes, side, other)

		sideSupply, otherSupply := m.supply(yes)
		if sideSupply, err = checkedAdd(sideSupply, quote.Out); err != nil {
			return err
		}
		m.setSupply(yes, sideSupply, otherSupply)

		pos := p.getPosition(state, id, caller)
		held, err := checkedAdd(pos.side(yes), quote.Out)
		if err != nil {
			return err
		}
		pos.setSide(yes, held)

		if err := p.collect(state, caller, stx); err != nil {
			return err
		}
		p.putMarket(state, m)
		p.setPosition(state, id, caller, pos)

		return p.emit(state, event, bigUint(id), caller, stx.ToBig(), quote.Out.ToBig(), quote.Net.ToBig())
	})
	if err != nil {
		return nil, err
	}

	p.log.Debug("outcome tokens bought",
		"id", id,
		"user", caller,
		"yes", yes,
		"stx", stx,
		"out", quote.Out,
		"fee", quote.Fee,
	)
	return quote.Out, nil
}

func (p *PredictionMarket) sell(state contract.StateDB, caller common.Address, id uint64, amount *uint256.Int, yes bool) (*uint256.Int, error) {
	method, event := "swap-no-to-stx", "SwapNoToStx"
	if yes {
		method, event = "swap-yes-to-stx", "SwapYesToStx"
	}

	var quote *SellQuote
	err := p.mutate(state, method, true, func() error {
		m, err := p.openMarket(state, id)
		if err != nil {
			return err
		}
		if amount.IsZero() {
			return ErrInvalidAmount
		}

		pos := p.getPosition(state, id, caller)
		held := pos.side(yes)
		if held.IsZero() {
			return ErrNoPosition
		}
		if held.Lt(amount) {
			return ErrInsufficientBalance
		}

		side, other := m.pool(yes)
		quote, err = QuoteSell(side, m.TotalLPTokens, amount, m.FeeNumerator)
		if err != nil {
			return err
		}

		counter, err := checkedSub(quote.Gross, amount)
		if err != nil {
			return err
		}
		sideSupply, otherSupply := m.supply(yes)
		if side, err = checkedSub(side, amount); err != nil {
			return err
		}
		if sideSupply, err = checkedSub(sideSupply, amount); err != nil {
			return err
		}
		// the counter leg may only come out of pool-owned depth, never out
		// of the depth backing the opposite side's holders
		if other.Lt(counter) {
			return ErrExcessiveSlippage
		}
		other = new(uint256.Int).Sub(other, counter)
		if other.Lt(otherSupply) {
			return ErrExcessiveSlippage
		}
		m.setSupply(yes, sideSupply, otherSupply)
		if m.TotalLPTokens, err = checkedSub(m.TotalLPTokens, quote.Gross); err != nil {
			return err
		}
		if m.FeesCollected, err = checkedAdd(m.FeesCollected, quote.Fee); err != nil {
			return err
		}
		m.setPools(yes, side, other)

		remaining, err := checkedSub(held, amount)
		if err != nil {
			return err
		}
		pos.setSide(yes, remaining)

		if err := p.pay(state, caller, quote.Net); err != nil {
			return err
		}
		p.putMarket(state, m)
		p.setPosition(state, id, caller, pos)

		return p.emit(state, event, bigUint(id), caller, quote.Net.ToBig(), amount.ToBig())
	})
	if err != nil {
		return nil, err
	}

	p.log.Debug("outcome tokens sold",
		"id", id,
		"user", caller,
		"yes", yes,
		"amount", amount,
		"net", quote.Net,
		"fee", quote.Fee,
	)
	return quote.Net, nil
}
