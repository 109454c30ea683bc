// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/parsdao/predict/contract"
)

// ResolveMarket records the outcome. Owner only, once per market.
func (p *PredictionMarket) ResolveMarket(state contract.StateDB, caller common.Address, id uint64, outcome bool) (bool, error) {
	err := p.mutate(state, "resolve-market", true, func() error {
		m, err := p.getMarket(state, id)
		if err != nil {
			return err
		}
		if err := p.requireOwner(state, caller); err != nil {
			return err
		}
		if m.Resolved {
			return ErrMarketResolved
		}

		m.Resolved = true
		m.Outcome = &outcome
		p.putMarket(state, m)

		return p.emit(state, "MarketResolved", bigUint(id), caller, outcome)
	})
	if err != nil {
		return false, err
	}

	p.log.Info("market resolved", "id", id, "outcome", outcome)
	return true, nil
}

// ClaimWinnings pays the caller's winning side holdings their share of the
// market and clears the caller's position.
//
//	payout = winning * TotalLPTokens / winningPool
func (p *PredictionMarket) ClaimWinnings(state contract.StateDB, caller common.Address, id uint64) (*uint256.Int, error) {
	var payout *uint256.Int
	err := p.mutate(state, "claim-winnings", true, func() error {
		m, err := p.getMarket(state, id)
		if err != nil {
			return err
		}
		if !m.Resolved {
			return ErrMarketNotResolved
		}
		if m.Outcome == nil {
			return ErrNoOutcome
		}
		winYes := *m.Outcome

		pos := p.getPosition(state, id, caller)
		winning := pos.side(winYes)
		if winning.IsZero() {
			return ErrNoWinnings
		}

		winPool, losePool := m.pool(winYes)
		payout, err = mulDiv(winning, m.TotalLPTokens, winPool)
		if err != nil {
			return err
		}
		// never pay out more than the market still holds
		payout = minU(payout, m.TotalLPTokens)
		if payout.IsZero() {
			return ErrNoWinnings
		}

		fromLosers, err := checkedSub(payout, winning)
		if err != nil {
			return err
		}
		if fromLosers.Gt(losePool) {
			fromLosers = losePool.Clone()
			if payout, err = checkedAdd(winning, fromLosers); err != nil {
				return err
			}
		}
		if winPool, err = checkedSub(winPool, winning); err != nil {
			return err
		}
		if losePool, err = checkedSub(losePool, fromLosers); err != nil {
			return err
		}
		if m.TotalLPTokens, err = checkedSub(m.TotalLPTokens, payout); err != nil {
			return err
		}
		m.setPools(winYes, winPool, losePool)

		winSupply, loseSupply := m.supply(winYes)
		if winSupply, err = checkedSub(winSupply, winning); err != nil {
			return err
		}
		if loseSupply, err = checkedSub(loseSupply, pos.side(!winYes)); err != nil {
			return err
		}
		m.setSupply(winYes, winSupply, loseSupply)

		if err := p.pay(state, caller, payout); err != nil {
			return err
		}
		p.putMarket(state, m)
		p.setPosition(state, id, caller, Position{Yes: new(uint256.Int), No: new(uint256.Int)})

		return p.emit(state, "WinningsClaimed", bigUint(id), caller, payout.ToBig())
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("winnings claimed", "id", id, "user", caller, "payout", payout)
	return payout, nil
}

// ClaimFees sends the fees collected by a market to the owner.
func (p *PredictionMarket) ClaimFees(state contract.StateDB, caller common.Address, id uint64) (*uint256.Int, error) {
	var fees *uint256.Int
	err := p.mutate(state, "claim-fees", true, func() error {
		m, err := p.getMarket(state, id)
		if err != nil {
			return err
		}
		if err := p.requireOwner(state, caller); err != nil {
			return err
		}
		if m.FeesCollected.IsZero() {
			return ErrNoFeesToClaim
		}

		fees = m.FeesCollected
		m.FeesCollected = new(uint256.Int)
		if err := p.pay(state, caller, fees); err != nil {
			return err
		}
		p.putMarket(state, m)

		return p.emit(state, "FeesClaimed", bigUint(id), caller, fees.ToBig())
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("fees claimed", "id", id, "amount", fees)
	return fees, nil
}
