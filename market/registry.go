// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/parsdao/predict/contract"
)

// validTitle reports whether title is 1..MaxTitleLength printable ASCII.
func validTitle(title string) bool {
	if len(title) == 0 || len(title) > MaxTitleLength {
		return false
	}
	for i := 0; i < len(title); i++ {
		if title[i] < 0x20 || title[i] > 0x7e {
			return false
		}
	}
	return true
}

// CreateMarket opens a market seeded with initialLiquidity split by
// yesPercentage (basis points). The creator receives the LP tokens and the
// seeded outcome tokens.
func (p *PredictionMarket) CreateMarket(
	state contract.StateDB,
	caller common.Address,
	initialLiquidity *uint256.Int,
	yesPercentage uint64,
	feeNumerator uint64,
	title string,
) (uint64, error) {
	var id uint64
	err := p.mutate(state, "create-market", true, func() error {
		if err := p.requireOwner(state, caller); err != nil {
			return err
		}
		if initialLiquidity.IsZero() {
			return ErrInvalidAmount
		}
		if _, err := u128(initialLiquidity); err != nil {
			return err
		}
		limits := p.getLimits(state)
		if yesPercentage < limits.MinYesPercentage || yesPercentage > limits.MaxYesPercentage {
			return ErrInvalidOdds
		}
		if feeNumerator > limits.MaxFeeNumerator {
			return ErrInvalidFee
		}
		if !validTitle(title) {
			return ErrInvalidTitle
		}

		yesPool, err := mulDiv(initialLiquidity, uint256.NewInt(yesPercentage), basisPoints)
		if err != nil {
			return err
		}
		noPool, err := checkedSub(initialLiquidity, yesPool)
		if err != nil {
			return err
		}

		if err := p.collect(state, caller, initialLiquidity); err != nil {
			return err
		}

		id = p.nextMarketID(state)
		p.setNextMarketID(state, id+1)

		m := &Market{
			ID:            id,
			Creator:       caller,
			Title:         title,
			FeeNumerator:  feeNumerator,
			YesPool:       yesPool,
			NoPool:        noPool,
			TotalLPTokens: initialLiquidity.Clone(),
			LPSupply:      initialLiquidity.Clone(),
			FeesCollected: new(uint256.Int),
			YesSupply:     yesPool.Clone(),
			NoSupply:      noPool.Clone(),
		}
		p.storeNewMarket(state, m)
		p.setLP(state, id, caller, initialLiquidity)
		p.setPosition(state, id, caller, Position{Yes: yesPool, No: noPool})

		return p.emit(state, "MarketCreated",
			bigUint(id), caller, title,
			initialLiquidity.ToBig(), bigUint(yesPercentage), bigUint(feeNumerator),
		)
	})
	if err != nil {
		return 0, err
	}

	p.log.Info("market created",
		"id", id,
		"creator", caller,
		"liquidity", initialLiquidity,
		"yesPercentage", yesPercentage,
		"fee", feeNumerator,
	)
	return id, nil
}

// GetMarket returns the stored market.
func (p *PredictionMarket) GetMarket(state contract.StateDB, id uint64) (*Market, error) {
	return p.getMarket(state, id)
}

// GetMarketDetails returns the market with its total liquidity and k.
func (p *PredictionMarket) GetMarketDetails(state contract.StateDB, id uint64) (*MarketDetails, error) {
	m, err := p.getMarket(state, id)
	if err != nil {
		return nil, err
	}
	total, err := checkedAdd(m.YesPool, m.NoPool)
	if err != nil {
		return nil, err
	}
	k, err := checkedMul(m.YesPool, m.NoPool)
	if err != nil {
		return nil, err
	}
	return &MarketDetails{Market: m, TotalLiquidity: total, K: k}, nil
}

// GetTitle returns the market title.
func (p *PredictionMarket) GetTitle(state contract.StateDB, id uint64) (string, error) {
	m, err := p.getMarket(state, id)
	if err != nil {
		return "", err
	}
	return m.Title, nil
}

func (p *PredictionMarket) MarketExists(state contract.StateDB, id uint64) bool {
	_, err := p.getMarket(state, id)
	return err == nil
}

func (p *PredictionMarket) IsMarketResolved(state contract.StateDB, id uint64) (bool, error) {
	m, err := p.getMarket(state, id)
	if err != nil {
		return false, err
	}
	return m.Resolved, nil
}

// GetTotalMarkets returns the number of markets ever created.
func (p *PredictionMarket) GetTotalMarkets(state contract.StateDB) uint64 {
	next := p.nextMarketID(state)
	if next == 0 {
		return 0
	}
	return next - 1
}

// CalculateK returns yesPool * noPool.
func (p *PredictionMarket) CalculateK(state contract.StateDB, id uint64) (*uint256.Int, error) {
	m, err := p.getMarket(state, id)
	if err != nil {
		return nil, err
	}
	return checkedMul(m.YesPool, m.NoPool)
}
