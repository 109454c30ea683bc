// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import "errors"

var (
	ErrOutOfGas        = errors.New("out of gas")
	ErrWriteProtection = errors.New("write protection")
)

// DeductGas charges requiredGas against suppliedGas.
func DeductGas(suppliedGas uint64, requiredGas uint64) (uint64, error) {
	if suppliedGas < requiredGas {
		return 0, ErrOutOfGas
	}
	return suppliedGas - requiredGas, nil
}
