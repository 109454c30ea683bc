// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// Market is a binary outcome market and its AMM pools.
type Market struct {
	ID           uint64
	Creator      common.Address
	Title        string
	FeeNumerator uint64

	YesPool *uint256.Int
	NoPool  *uint256.Int
	// TotalLPTokens tracks YesPool + NoPool.
	TotalLPTokens *uint256.Int
	// LPSupply is the sum of every LP balance issued for the market.
	LPSupply      *uint256.Int
	FeesCollected *uint256.Int

	// YesSupply and NoSupply are the outcome tokens held across all user
	// positions. Each pool never drops below its side's supply while the
	// market is open.
	YesSupply *uint256.Int
	NoSupply  *uint256.Int

	Resolved bool
	Outcome  *bool
}

// pool returns the pool for the given side and the opposite one.
func (m *Market) pool(yes bool) (side, other *uint256.Int) {
	if yes {
		return m.YesPool, m.NoPool
	}
	return m.NoPool, m.YesPool
}

func (m *Market) setPools(yes bool, side, other *uint256.Int) {
	if yes {
		m.YesPool, m.NoPool = side, other
	} else {
		m.NoPool, m.YesPool = side, other
	}
}

// supply returns the outstanding tokens for the given side and the opposite one.
func (m *Market) supply(yes bool) (side, other *uint256.Int) {
	if yes {
		return m.YesSupply, m.NoSupply
	}
	return m.NoSupply, m.YesSupply
}

func (m *Market) setSupply(yes bool, side, other *uint256.Int) {
	if yes {
		m.YesSupply, m.NoSupply = side, other
	} else {
		m.NoSupply, m.YesSupply = side, other
	}
}

// MarketDetails extends Market with derived liquidity figures.
type MarketDetails struct {
	*Market
	TotalLiquidity *uint256.Int
	K              *uint256.Int
}

// Position is a user's outcome token holdings in one market.
type Position struct {
	Yes *uint256.Int
	No  *uint256.Int
}

func (p Position) side(yes bool) *uint256.Int {
	if yes {
		return p.Yes
	}
	return p.No
}

func (p *Position) setSide(yes bool, v *uint256.Int) {
	if yes {
		p.Yes = v
	} else {
		p.No = v
	}
}

// RemoveResult is returned by RemoveLiquidity.
type RemoveResult struct {
	LPTokensRemoved *uint256.Int
	STXReturned     *uint256.Int
	Yes             *uint256.Int
	No              *uint256.Int
}

// LPPositionInfo describes a user's LP stake in a market.
type LPPositionInfo struct {
	UserLPTokens   *uint256.Int
	TotalLPTokens  *uint256.Int
	TotalLiquidity *uint256.Int
	LPSupply       *uint256.Int
	// LPTokenValue is the Precision-scaled base asset value of one LP token.
	LPTokenValue  *uint256.Int
	PositionValue *uint256.Int
}

// Limits bound the parameters accepted by CreateMarket.
type Limits struct {
	MinYesPercentage uint64 `validate:"gt=0,ltefield=MaxYesPercentage"`
	MaxYesPercentage uint64 `validate:"lt=10000"`
	MaxFeeNumerator  uint64 `validate:"lte=1000"`
}

// DefaultLimits returns the odds and fee bounds used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MinYesPercentage: 100,
		MaxYesPercentage: 9900,
		MaxFeeNumerator:  MaxFeeNumerator,
	}
}
