// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"github.com/holiman/uint256"
)

const (
	// BasisPoints is the denominator for fees and odds.
	BasisPoints = 10000
	// MaxFeeNumerator caps the trading fee at 10%.
	MaxFeeNumerator = 1000
	// MaxTitleLength is the longest title a market may carry.
	MaxTitleLength = 70
)

var (
	// Precision scales fixed-point intermediates.
	Precision = uint256.NewInt(1_000_000_000_000)

	// MaxUint128 bounds every stored quantity.
	MaxUint128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

	basisPoints = uint256.NewInt(BasisPoints)
)

func u128(v *uint256.Int) (*uint256.Int, error) {
	if v.Gt(MaxUint128) {
		return nil, ErrArithmeticOverflow
	}
	return v, nil
}

func checkedAdd(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return u128(z)
}

func checkedSub(a, b *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, ErrArithmeticOverflow
	}
	return z, nil
}

func checkedMul(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return u128(z)
}

func checkedDiv(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, ErrCalculationFailed
	}
	return new(uint256.Int).Div(a, b), nil
}

// mulDiv computes a*b/c with the u128 bound applied to the product.
func mulDiv(a, b, c *uint256.Int) (*uint256.Int, error) {
	p, err := checkedMul(a, b)
	if err != nil {
		return nil, err
	}
	return checkedDiv(p, c)
}

func minU(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return a
	}
	return b
}
