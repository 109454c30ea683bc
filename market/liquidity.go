// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/parsdao/predict/contract"
)

// AddLiquidity deposits stx into both pools at the current yes/no ratio and
// credits the caller one LP token per unit deposited.
func (p *PredictionMarket) AddLiquidity(state contract.StateDB, caller common.Address, id uint64, stx *uint256.Int) (*uint256.Int, error) {
	var yesAdd, noAdd *uint256.Int
	err := p.mutate(state, "add-liquidity", true, func() error {
		m, err := p.openMarket(state, id)
		if err != nil {
			return err
		}
		if stx.IsZero() {
			return ErrInvalidAmount
		}
		if _, err := u128(stx); err != nil {
			return err
		}

		// a fully drained market restarts at even odds
		if m.TotalLPTokens.IsZero() {
			yesAdd = new(uint256.Int).Rsh(stx, 1)
		} else if yesAdd, err = mulDiv(stx, m.YesPool, m.TotalLPTokens); err != nil {
			return err
		}
		noAdd, err = checkedSub(stx, yesAdd)
		if err != nil {
			return err
		}

		if m.YesPool, err = checkedAdd(m.YesPool, yesAdd); err != nil {
			return err
		}
		if m.NoPool, err = checkedAdd(m.NoPool, noAdd); err != nil {
			return err
		}
		if m.TotalLPTokens, err = checkedAdd(m.TotalLPTokens, stx); err != nil {
			return err
		}
		if m.LPSupply, err = checkedAdd(m.LPSupply, stx); err != nil {
			return err
		}
		if m.YesSupply, err = checkedAdd(m.YesSupply, yesAdd); err != nil {
			return err
		}
		if m.NoSupply, err = checkedAdd(m.NoSupply, noAdd); err != nil {
			return err
		}

		lp, err := checkedAdd(p.getLP(state, id, caller), stx)
		if err != nil {
			return err
		}
		pos := p.getPosition(state, id, caller)
		if pos.Yes, err = checkedAdd(pos.Yes, yesAdd); err != nil {
			return err
		}
		if pos.No, err = checkedAdd(pos.No, noAdd); err != nil {
			return err
		}

		if err := p.collect(state, caller, stx); err != nil {
			return err
		}
		p.putMarket(state, m)
		p.setLP(state, id, caller, lp)
		p.setPosition(state, id, caller, pos)

		return p.emit(state, "LiquidityAdded", bigUint(id), caller, stx.ToBig(), stx.ToBig(), yesAdd.ToBig(), noAdd.ToBig())
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("liquidity added", "id", id, "user", caller, "stx", stx, "yes", yesAdd, "no", noAdd)
	return stx.Clone(), nil
}

// RemoveLiquidity burns lp tokens and returns the matching share of the
// caller's own outcome position as base asset.
func (p *PredictionMarket) RemoveLiquidity(state contract.StateDB, caller common.Address, id uint64, lp *uint256.Int) (*RemoveResult, error) {
	var result *RemoveResult
	err := p.mutate(state, "remove-liquidity", true, func() error {
		m, err := p.openMarket(state, id)
		if err != nil {
			return err
		}
		if lp.IsZero() {
			return ErrInvalidAmount
		}

		userLP := p.getLP(state, id, caller)
		if userLP.IsZero() {
			return ErrNoPosition
		}
		if userLP.Lt(lp) {
			return ErrInsufficientLiquidity
		}

		pos := p.getPosition(state, id, caller)
		userTotal, err := checkedAdd(pos.Yes, pos.No)
		if err != nil {
			return err
		}
		if userTotal.IsZero() {
			return ErrNoPosition
		}

		yesOut, err := shareOf(lp, pos.Yes, userTotal)
		if err != nil {
			return err
		}
		noOut, err := shareOf(lp, pos.No, userTotal)
		if err != nil {
			return err
		}
		stxOut, err := checkedAdd(yesOut, noOut)
		if err != nil {
			return err
		}

		if pos.Yes, err = checkedSub(pos.Yes, yesOut); err != nil {
			return err
		}
		if pos.No, err = checkedSub(pos.No, noOut); err != nil {
			return err
		}
		if userLP, err = checkedSub(userLP, lp); err != nil {
			return err
		}
		if m.YesPool, err = checkedSub(m.YesPool, yesOut); err != nil {
			return err
		}
		if m.NoPool, err = checkedSub(m.NoPool, noOut); err != nil {
			return err
		}
		if m.TotalLPTokens, err = checkedSub(m.TotalLPTokens, stxOut); err != nil {
			return err
		}
		if m.LPSupply, err = checkedSub(m.LPSupply, lp); err != nil {
			return err
		}
		if m.YesSupply, err = checkedSub(m.YesSupply, yesOut); err != nil {
			return err
		}
		if m.NoSupply, err = checkedSub(m.NoSupply, noOut); err != nil {
			return err
		}

		if err := p.pay(state, caller, stxOut); err != nil {
			return err
		}
		p.putMarket(state, m)
		p.setLP(state, id, caller, userLP)
		p.setPosition(state, id, caller, pos)

		result = &RemoveResult{
			LPTokensRemoved: lp.Clone(),
			STXReturned:     stxOut,
			Yes:             yesOut,
			No:              noOut,
		}
		return p.emit(state, "LiquidityRemoved", bigUint(id), caller, lp.ToBig(), stxOut.ToBig(), yesOut.ToBig(), noOut.ToBig())
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("liquidity removed", "id", id, "user", caller, "lp", lp, "stx", result.STXReturned)
	return result, nil
}

// shareOf returns lp * held / total at Precision, capped at held.
func shareOf(lp, held, total *uint256.Int) (*uint256.Int, error) {
	scaled, err := checkedMul(lp, held)
	if err != nil {
		return nil, err
	}
	if scaled, err = checkedMul(scaled, Precision); err != nil {
		return nil, err
	}
	if scaled, err = checkedDiv(scaled, total); err != nil {
		return nil, err
	}
	out, err := checkedDiv(scaled, Precision)
	if err != nil {
		return nil, err
	}
	return minU(out, held), nil
}

// GetUserPosition returns the caller's outcome token holdings. Unknown
// users hold nothing.
func (p *PredictionMarket) GetUserPosition(state contract.StateDB, id uint64, user common.Address) (Position, error) {
	if _, err := p.getMarket(state, id); err != nil {
		return Position{}, err
	}
	return p.getPosition(state, id, user), nil
}

// GetUserLP returns user's LP token balance.
func (p *PredictionMarket) GetUserLP(state contract.StateDB, id uint64, user common.Address) (*uint256.Int, error) {
	if _, err := p.getMarket(state, id); err != nil {
		return nil, err
	}
	return p.getLP(state, id, user), nil
}

// GetLPPositionInfo values user's LP stake against the current pools.
func (p *PredictionMarket) GetLPPositionInfo(state contract.StateDB, id uint64, user common.Address) (*LPPositionInfo, error) {
	m, err := p.getMarket(state, id)
	if err != nil {
		return nil, err
	}
	userLP := p.getLP(state, id, user)
	liquidity, err := checkedAdd(m.YesPool, m.NoPool)
	if err != nil {
		return nil, err
	}

	info := &LPPositionInfo{
		UserLPTokens:   userLP,
		TotalLPTokens:  m.TotalLPTokens,
		TotalLiquidity: liquidity,
		LPSupply:       m.LPSupply,
		LPTokenValue:   new(uint256.Int),
		PositionValue:  new(uint256.Int),
	}
	if m.LPSupply.IsZero() {
		return info, nil
	}
	if info.LPTokenValue, err = mulDiv(m.TotalLPTokens, Precision, m.LPSupply); err != nil {
		return nil, err
	}
	if info.PositionValue, err = mulDiv(userLP, m.TotalLPTokens, m.LPSupply); err != nil {
		return nil, err
	}
	return info, nil
}
