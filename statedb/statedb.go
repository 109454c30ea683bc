// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package statedb provides a contract.StateDB backed by a luxfi/database
// key-value store. Writes go straight to the database and are journaled so
// that RevertToSnapshot can restore the previous values.
package statedb

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	ethtypes "github.com/luxfi/geth/core/types"

	"github.com/parsdao/predict/contract"
)

var (
	_ contract.StateDB         = (*StateDB)(nil)
	_ contract.AccessibleState = (*AccessibleState)(nil)
	_ contract.BlockContext    = (*BlockContext)(nil)
)

var ErrInvalidSnapshot = errors.New("invalid snapshot id")

// Key prefixes inside the backing database
var (
	storagePrefix = []byte("s")
	balancePrefix = []byte("b")
	accountPrefix = []byte("a")
)

// journalEntry records the value a key held before it was overwritten.
// A nil prev means the key did not exist.
type journalEntry struct {
	key  []byte
	prev []byte
	logs int
}

type revision struct {
	id           int
	journalIndex int
}

// StateDB is not safe for concurrent use.
type StateDB struct {
	db database.Database

	journal        []journalEntry
	validRevisions []revision
	nextRevisionID int

	logs []*ethtypes.Log

	// dbErr is the first database error encountered. The StateDB interface
	// has no error returns so failures are latched and surfaced via Error.
	dbErr error
}

// New returns a StateDB persisting into db.
func New(db database.Database) *StateDB {
	return &StateDB{db: db}
}

// Error returns the first database error hit by any accessor.
func (s *StateDB) Error() error {
	return s.dbErr
}

func (s *StateDB) setError(err error) {
	if s.dbErr == nil {
		s.dbErr = err
	}
}

func makeKey(prefix []byte, parts ...[]byte) []byte {
	size := len(prefix)
	for _, p := range parts {
		size += len(p)
	}
	key := make([]byte, 0, size)
	key = append(key, prefix...)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func (s *StateDB) get(key []byte) []byte {
	val, err := s.db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.setError(fmt.Errorf("get %x: %w", key, err))
		return nil
	}
	return val
}

// put writes value under key, journaling the previous value. A nil value
// deletes the key.
func (s *StateDB) put(key, value []byte) {
	prev := s.get(key)
	s.journal = append(s.journal, journalEntry{key: key, prev: prev, logs: -1})
	s.write(key, value)
}

func (s *StateDB) write(key, value []byte) {
	var err error
	if value == nil {
		err = s.db.Delete(key)
	} else {
		err = s.db.Put(key, value)
	}
	if err != nil {
		s.setError(fmt.Errorf("write %x: %w", key, err))
	}
}

// GetState returns the value of a storage slot.
func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	return common.BytesToHash(s.get(makeKey(storagePrefix, addr[:], key[:])))
}

// SetState sets a storage slot and returns its previous value. Writing the
// zero hash clears the slot.
func (s *StateDB) SetState(addr common.Address, key common.Hash, value common.Hash) common.Hash {
	dbKey := makeKey(storagePrefix, addr[:], key[:])
	prev := common.BytesToHash(s.get(dbKey))
	if value == (common.Hash{}) {
		s.put(dbKey, nil)
	} else {
		s.put(dbKey, common.CopyBytes(value[:]))
	}
	return prev
}

// GetBalance returns the base-asset balance of addr.
func (s *StateDB) GetBalance(addr common.Address) *uint256.Int {
	return new(uint256.Int).SetBytes(s.get(makeKey(balancePrefix, addr[:])))
}

func (s *StateDB) setBalance(addr common.Address, bal *uint256.Int) {
	key := makeKey(balancePrefix, addr[:])
	if bal.IsZero() {
		s.put(key, nil)
		return
	}
	b := bal.Bytes32()
	s.put(key, b[:])
}

// AddBalance credits addr and returns the balance before the change.
func (s *StateDB) AddBalance(addr common.Address, amount *uint256.Int, _ tracing.BalanceChangeReason) uint256.Int {
	prev := s.GetBalance(addr)
	s.touch(addr)
	s.setBalance(addr, new(uint256.Int).Add(prev, amount))
	return *prev
}

// SubBalance debits addr and returns the balance before the change. Callers
// check sufficiency first.
func (s *StateDB) SubBalance(addr common.Address, amount *uint256.Int, _ tracing.BalanceChangeReason) uint256.Int {
	prev := s.GetBalance(addr)
	s.setBalance(addr, new(uint256.Int).Sub(prev, amount))
	return *prev
}

// Exist reports whether addr has been created or credited.
func (s *StateDB) Exist(addr common.Address) bool {
	return s.get(makeKey(accountPrefix, addr[:])) != nil
}

// CreateAccount marks addr as existing.
func (s *StateDB) CreateAccount(addr common.Address) {
	s.touch(addr)
}

func (s *StateDB) touch(addr common.Address) {
	if !s.Exist(addr) {
		s.put(makeKey(accountPrefix, addr[:]), []byte{1})
	}
}

// AddLog appends an event log.
func (s *StateDB) AddLog(log *ethtypes.Log) {
	s.journal = append(s.journal, journalEntry{logs: len(s.logs)})
	log.Index = uint(len(s.logs))
	s.logs = append(s.logs, log)
}

// Logs returns the logs emitted since the last Finalise.
func (s *StateDB) Logs() []*ethtypes.Log {
	return s.logs
}

// Snapshot returns an identifier for the current revision of the state.
func (s *StateDB) Snapshot() int {
	id := s.nextRevisionID
	s.nextRevisionID++
	s.validRevisions = append(s.validRevisions, revision{id: id, journalIndex: len(s.journal)})
	return id
}

// RevertToSnapshot undoes every change made since the snapshot was taken.
func (s *StateDB) RevertToSnapshot(revid int) {
	idx := -1
	for i := len(s.validRevisions) - 1; i >= 0; i-- {
		if s.validRevisions[i].id == revid {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.setError(fmt.Errorf("%w: %d", ErrInvalidSnapshot, revid))
		return
	}
	target := s.validRevisions[idx].journalIndex

	for i := len(s.journal) - 1; i >= target; i-- {
		entry := s.journal[i]
		if entry.key == nil {
			s.logs = s.logs[:entry.logs]
			continue
		}
		s.write(entry.key, entry.prev)
	}
	s.journal = s.journal[:target]
	s.validRevisions = s.validRevisions[:idx]
}

// Finalise drops the journal and the collected logs. Changes made so far
// can no longer be reverted.
func (s *StateDB) Finalise() {
	s.journal = s.journal[:0]
	s.validRevisions = s.validRevisions[:0]
	s.logs = nil
}

// BlockContext is a fixed block used by hosts that do not run a chain.
type BlockContext struct {
	BlockNumber *big.Int
	Time        uint64
}

func (b *BlockContext) Number() *big.Int {
	if b.BlockNumber == nil {
		return new(big.Int)
	}
	return b.BlockNumber
}

func (b *BlockContext) Timestamp() uint64 {
	return b.Time
}

// AccessibleState pairs a StateDB with a block for contract.Run calls.
type AccessibleState struct {
	State *StateDB
	Block *BlockContext
}

// NewAccessibleState returns an AccessibleState at block zero.
func NewAccessibleState(state *StateDB) *AccessibleState {
	return &AccessibleState{State: state, Block: &BlockContext{}}
}

func (a *AccessibleState) GetStateDB() contract.StateDB {
	return a.State
}

func (a *AccessibleState) GetBlockContext() contract.BlockContext {
	return a.Block
}
