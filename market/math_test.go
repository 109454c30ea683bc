// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestCheckedMath(t *testing.T) {
	one := u(1)
	maxU := MaxUint128.Clone()

	tests := []struct {
		name     string
		op       func(a, b *uint256.Int) (*uint256.Int, error)
		a, b     *uint256.Int
		expected *uint256.Int
		err      error
	}{
		{"add", checkedAdd, u(2), u(3), u(5), nil},
		{"add to max", checkedAdd, new(uint256.Int).Sub(maxU, one), one, maxU, nil},
		{"add past u128", checkedAdd, maxU, one, nil, ErrArithmeticOverflow},
		{"sub", checkedSub, u(5), u(3), u(2), nil},
		{"sub to zero", checkedSub, u(5), u(5), u(0), nil},
		{"sub underflow", checkedSub, u(3), u(5), nil, ErrArithmeticOverflow},
		{"mul", checkedMul, u(6), u(7), u(42), nil},
		{"mul past u128", checkedMul, maxU, u(2), nil, ErrArithmeticOverflow},
		{"mul by zero", checkedMul, maxU, u(0), u(0), nil},
		{"div", checkedDiv, u(10), u(3), u(3), nil},
		{"div by zero", checkedDiv, u(10), u(0), nil, ErrCalculationFailed},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.op(test.a, test.b)
			if test.err != nil {
				require.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected.String(), got.String())
		})
	}
}

func TestMulDivMultipliesFirst(t *testing.T) {
	require := require.New(t)

	// 7 * 3 / 2 truncates once, not twice.
	got, err := mulDiv(u(7), u(3), u(2))
	require.NoError(err)
	require.Equal(uint64(10), got.Uint64())

	_, err = mulDiv(MaxUint128, u(2), u(4))
	require.ErrorIs(err, ErrArithmeticOverflow)
}

func TestErrorCode(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(2), ErrorCode(ErrNotAuthorized))
	require.Equal(uint64(118), ErrorCode(ErrExcessiveSlippage))
	require.Equal(uint64(0), ErrorCode(ErrAlreadyInitialized))
	require.Equal(uint64(0), ErrorCode(nil))

	wrapped := fmt.Errorf("packing: %w", ErrCalculationFailed)
	require.Equal(uint64(117), ErrorCode(wrapped))
	require.ErrorIs(wrapped, ErrCalculationFailed)
	require.Contains(ErrContractPaused.Error(), "code 119")
}
