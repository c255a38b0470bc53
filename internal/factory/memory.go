package factory

import (
	"context"
	"fmt"
	"sync"

	"github.com/babilu-online/lootbox-contract/internal/domain"
)

// MemoryFactory is an in-memory capacity ledger satisfying Factory,
// Transactional and Provisioner. Used by tests and the memory backend of
// the service.
type MemoryFactory struct {
	mu        sync.Mutex
	maxSupply map[uint64]uint64
	minted    map[uint64]uint64
	owners    map[uint64]string
	holdings  map[string]map[uint64]uint64
}

// NewMemoryFactory creates an empty ledger.
func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{
		maxSupply: make(map[uint64]uint64),
		minted:    make(map[uint64]uint64),
		owners:    make(map[uint64]string),
		holdings:  make(map[string]map[uint64]uint64),
	}
}

// RegisterToken sets the mintable capacity for a token. Re-registering
// replaces the capacity wholesale but keeps the minted count.
func (f *MemoryFactory) RegisterToken(_ context.Context, tokenID uint64, owner string, maxSupply uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxSupply[tokenID] = maxSupply
	f.owners[tokenID] = owner
	return nil
}

// BalanceOf returns the remaining mintable capacity for the token.
func (f *MemoryFactory) BalanceOf(_ context.Context, owner string, tokenID uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	max, ok := f.maxSupply[tokenID]
	if !ok {
		return 0, nil
	}
	if registered := f.owners[tokenID]; registered != "" && registered != owner {
		return 0, fmt.Errorf("%w: token %d is not managed by %s", domain.ErrUnauthorized, tokenID, owner)
	}
	return max - f.minted[tokenID], nil
}

// Mint issues amount units of the token to the recipient, consuming capacity.
func (f *MemoryFactory) Mint(_ context.Context, tokenID uint64, to string, amount uint64, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	max, ok := f.maxSupply[tokenID]
	if !ok {
		return fmt.Errorf("%w: token %d is not registered", domain.ErrInsufficientSupply, tokenID)
	}
	if f.minted[tokenID]+amount > max {
		return fmt.Errorf("%w: token %d", domain.ErrInsufficientSupply, tokenID)
	}

	f.minted[tokenID] += amount
	if f.holdings[to] == nil {
		f.holdings[to] = make(map[uint64]uint64)
	}
	f.holdings[to][tokenID] += amount
	return nil
}

// Holdings returns how many units of the token the recipient has received.
func (f *MemoryFactory) Holdings(to string, tokenID uint64) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holdings[to][tokenID]
}

// TotalMinted returns the total units issued across all recipients of a token.
func (f *MemoryFactory) TotalMinted(tokenID uint64) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.minted[tokenID]
}

// WithinTx runs fn against the ledger and discards every mutation fn made if
// it returns an error.
func (f *MemoryFactory) WithinTx(_ context.Context, fn func(tx Factory) error) error {
	f.mu.Lock()
	minted := copyCounts(f.minted)
	holdings := make(map[string]map[uint64]uint64, len(f.holdings))
	for to, h := range f.holdings {
		holdings[to] = copyCounts(h)
	}
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.minted = minted
		f.holdings = holdings
		f.mu.Unlock()
		return err
	}
	return nil
}

func copyCounts(src map[uint64]uint64) map[uint64]uint64 {
	dst := make(map[uint64]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
