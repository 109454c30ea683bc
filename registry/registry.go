// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"fmt"

	"github.com/luxfi/geth/common"
)

// ============================================================================
// MARKET PRECOMPILE ADDRESS SCHEME - Aligned with LP Numbering
// ============================================================================
//
// Market precompiles use trailing-significant 20-byte addresses:
//   Format: 0x000000000000000000000000000000000000PFII
//
//                  P F II
//                  │ │ └┴─ Item (8 bits)
//                  │ └──── Family (4 bits)
//                  └────── Page, always 9 (LP-9xxx Markets)
//
// F=1 is the prediction market family (LP-91xx).
//
// Example: binary prediction market = P=9, F=1, II=00
//          Address = 0x0000000000000000000000000000000000009100 (LP-9100)

// MarketsPage is the P nibble for every market precompile.
const MarketsPage uint8 = 9

// FamilyPrediction is the F nibble of the prediction market family.
const FamilyPrediction uint8 = 1

// ItemBinaryMarket is the II byte of the binary prediction market AMM.
const ItemBinaryMarket uint8 = 0x00

// PrecompileAddress calculates address from (F, II) nibbles on the markets page.
func PrecompileAddress(family, item uint8) common.Address {
	if family > 15 {
		return common.Address{}
	}
	selector := fmt.Sprintf("%x%x%02x", MarketsPage, family, item)
	addr := "000000000000000000000000000000000000" + selector
	return common.HexToAddress("0x" + addr)
}

// FamilyRange returns the first and last address of a family.
func FamilyRange(family uint8) (common.Address, common.Address) {
	return PrecompileAddress(family, 0x00), PrecompileAddress(family, 0xff)
}
