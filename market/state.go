// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"

	"github.com/parsdao/predict/contract"
)

// Storage key prefixes
var (
	globalPrefix   = []byte("glob")
	marketPrefix   = []byte("mkt")
	positionPrefix = []byte("pos")
	lpPrefix       = []byte("lp")
)

// Global slot names
var (
	ownerSlot       = []byte("owner")
	pausedSlot      = []byte("paused")
	initializedSlot = []byte("initialized")
	nextIDSlot      = []byte("next-market-id")
	oddsSlot        = []byte("odds")
	maxFeeSlot      = []byte("max-fee")
)

// Per-market field names
var (
	fieldPools   = []byte("pools")
	fieldLP      = []byte("lp")
	fieldFees    = []byte("fees")
	fieldSupply  = []byte("supply")
	fieldFlags   = []byte("flags")
	fieldCreator = []byte("creator")
	fieldTitle   = []byte("title")
)

const titleSlots = 3

// flags slot layout, one byte each
const (
	flagExists = iota
	flagResolved
	flagOutcomeSet
	flagOutcome
	flagTitleLen
)

// makeStorageKey creates a storage key from prefix and identifier
func makeStorageKey(prefix []byte, id ...[]byte) common.Hash {
	h := blake3.New()
	h.Write(prefix)
	for _, part := range id {
		h.Write(part)
	}
	var key common.Hash
	h.Digest().Read(key[:])
	return key
}

func idBytes(id uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], id)
	return b[:]
}

func marketKey(id uint64, field []byte) common.Hash {
	return makeStorageKey(marketPrefix, idBytes(id), field)
}

func titleKey(id uint64, i int) common.Hash {
	return makeStorageKey(marketPrefix, idBytes(id), fieldTitle, []byte{byte(i)})
}

// packPair stores two u128 values in one slot, hi in the first 16 bytes.
func packPair(hi, lo *uint256.Int) common.Hash {
	var h common.Hash
	a, b := hi.Bytes32(), lo.Bytes32()
	copy(h[:16], a[16:])
	copy(h[16:], b[16:])
	return h
}

func unpackPair(h common.Hash) (*uint256.Int, *uint256.Int) {
	return new(uint256.Int).SetBytes(h[:16]), new(uint256.Int).SetBytes(h[16:])
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// =========================================================================
// Global state
// =========================================================================

func (p *PredictionMarket) getGlobal(state contract.StateDB, slot []byte) common.Hash {
	return state.GetState(p.address, makeStorageKey(globalPrefix, slot))
}

func (p *PredictionMarket) setGlobal(state contract.StateDB, slot []byte, value common.Hash) {
	state.SetState(p.address, makeStorageKey(globalPrefix, slot), value)
}

func (p *PredictionMarket) getOwner(state contract.StateDB) common.Address {
	return common.BytesToAddress(p.getGlobal(state, ownerSlot).Bytes())
}

func (p *PredictionMarket) isInitialized(state contract.StateDB) bool {
	return p.getGlobal(state, initializedSlot) != (common.Hash{})
}

func (p *PredictionMarket) isPaused(state contract.StateDB) bool {
	return p.getGlobal(state, pausedSlot) != (common.Hash{})
}

func (p *PredictionMarket) setPaused(state contract.StateDB, paused bool) {
	var h common.Hash
	h[common.HashLength-1] = boolByte(paused)
	p.setGlobal(state, pausedSlot, h)
}

func (p *PredictionMarket) nextMarketID(state contract.StateDB) uint64 {
	h := p.getGlobal(state, nextIDSlot)
	return binary.BigEndian.Uint64(h[24:])
}

func (p *PredictionMarket) setNextMarketID(state contract.StateDB, id uint64) {
	var h common.Hash
	binary.BigEndian.PutUint64(h[24:], id)
	p.setGlobal(state, nextIDSlot, h)
}

func (p *PredictionMarket) getLimits(state contract.StateDB) Limits {
	minYes, maxYes := unpackPair(p.getGlobal(state, oddsSlot))
	maxFee := new(uint256.Int).SetBytes(p.getGlobal(state, maxFeeSlot).Bytes())
	return Limits{
		MinYesPercentage: minYes.Uint64(),
		MaxYesPercentage: maxYes.Uint64(),
		MaxFeeNumerator:  maxFee.Uint64(),
	}
}

func (p *PredictionMarket) setLimits(state contract.StateDB, limits Limits) {
	p.setGlobal(state, oddsSlot, packPair(uint256.NewInt(limits.MinYesPercentage), uint256.NewInt(limits.MaxYesPercentage)))
	p.setGlobal(state, maxFeeSlot, common.Hash(uint256.NewInt(limits.MaxFeeNumerator).Bytes32()))
}

// =========================================================================
// Markets
// =========================================================================

// getMarket loads a market, returning ErrMarketNotFound if it was never created.
func (p *PredictionMarket) getMarket(state contract.StateDB, id uint64) (*Market, error) {
	flags := state.GetState(p.address, marketKey(id, fieldFlags))
	if flags[flagExists] == 0 {
		return nil, ErrMarketNotFound
	}

	m := &Market{ID: id}
	m.YesPool, m.NoPool = unpackPair(state.GetState(p.address, marketKey(id, fieldPools)))
	m.TotalLPTokens, m.LPSupply = unpackPair(state.GetState(p.address, marketKey(id, fieldLP)))
	var feeNum *uint256.Int
	m.FeesCollected, feeNum = unpackPair(state.GetState(p.address, marketKey(id, fieldFees)))
	m.FeeNumerator = feeNum.Uint64()
	m.YesSupply, m.NoSupply = unpackPair(state.GetState(p.address, marketKey(id, fieldSupply)))
	m.Resolved = flags[flagResolved] == 1
	if flags[flagOutcomeSet] == 1 {
		outcome := flags[flagOutcome] == 1
		m.Outcome = &outcome
	}
	m.Creator = common.BytesToAddress(state.GetState(p.address, marketKey(id, fieldCreator)).Bytes())

	titleLen := int(flags[flagTitleLen])
	raw := make([]byte, 0, titleSlots*common.HashLength)
	for i := 0; i < titleSlots; i++ {
		slot := state.GetState(p.address, titleKey(id, i))
		raw = append(raw, slot[:]...)
	}
	m.Title = string(raw[:titleLen])
	return m, nil
}

// putMarket persists the mutable fields of m.
func (p *PredictionMarket) putMarket(state contract.StateDB, m *Market) {
	state.SetState(p.address, marketKey(m.ID, fieldPools), packPair(m.YesPool, m.NoPool))
	state.SetState(p.address, marketKey(m.ID, fieldLP), packPair(m.TotalLPTokens, m.LPSupply))
	state.SetState(p.address, marketKey(m.ID, fieldFees), packPair(m.FeesCollected, uint256.NewInt(m.FeeNumerator)))
	state.SetState(p.address, marketKey(m.ID, fieldSupply), packPair(m.YesSupply, m.NoSupply))

	var flags common.Hash
	flags[flagExists] = 1
	flags[flagResolved] = boolByte(m.Resolved)
	if m.Outcome != nil {
		flags[flagOutcomeSet] = 1
		flags[flagOutcome] = boolByte(*m.Outcome)
	}
	flags[flagTitleLen] = byte(len(m.Title))
	state.SetState(p.address, marketKey(m.ID, fieldFlags), flags)
}

// storeNewMarket writes the immutable fields once at creation.
func (p *PredictionMarket) storeNewMarket(state contract.StateDB, m *Market) {
	state.SetState(p.address, marketKey(m.ID, fieldCreator), common.BytesToHash(m.Creator.Bytes()))

	raw := make([]byte, titleSlots*common.HashLength)
	copy(raw, m.Title)
	for i := 0; i < titleSlots; i++ {
		state.SetState(p.address, titleKey(m.ID, i), common.BytesToHash(raw[i*common.HashLength:(i+1)*common.HashLength]))
	}
	p.putMarket(state, m)
}

// =========================================================================
// Positions
// =========================================================================

func (p *PredictionMarket) getPosition(state contract.StateDB, id uint64, user common.Address) Position {
	yes, no := unpackPair(state.GetState(p.address, makeStorageKey(positionPrefix, idBytes(id), user[:])))
	return Position{Yes: yes, No: no}
}

func (p *PredictionMarket) setPosition(state contract.StateDB, id uint64, user common.Address, pos Position) {
	state.SetState(p.address, makeStorageKey(positionPrefix, idBytes(id), user[:]), packPair(pos.Yes, pos.No))
}

func (p *PredictionMarket) getLP(state contract.StateDB, id uint64, user common.Address) *uint256.Int {
	h := state.GetState(p.address, makeStorageKey(lpPrefix, idBytes(id), user[:]))
	return new(uint256.Int).SetBytes(h[:])
}

func (p *PredictionMarket) setLP(state contract.StateDB, id uint64, user common.Address, amount *uint256.Int) {
	state.SetState(p.address, makeStorageKey(lpPrefix, idBytes(id), user[:]), common.Hash(amount.Bytes32()))
}
