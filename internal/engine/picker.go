package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/babilu-online/lootbox-contract/internal/domain"
	"github.com/babilu-online/lootbox-contract/internal/factory"
)

var basisPoints = big.NewInt(BasisPoints)

// pickClass consumes one random draw and returns a local class index from the
// probability table.
func (s *service) pickClass(probabilities []uint16, caller string) uint32 {
	value := s.rnd.Draw(caller)
	roll := uint32(new(big.Int).Mod(value, basisPoints).Uint64())
	return classForRoll(roll, probabilities)
}

// classForRoll maps a roll in [0, BasisPoints) to a local class index. The
// table is scanned from the highest index down to 1; the comparison is a
// strict less-than, so a remaining value exactly at a class's boundary rolls
// into the next class down. Index 0 is the implicit fallback with effective
// probability BasisPoints - sum(probabilities[1:]).
func classForRoll(roll uint32, probabilities []uint16) uint32 {
	for i := len(probabilities) - 1; i >= 1; i-- {
		p := uint32(probabilities[i])
		if roll < p {
			return uint32(i)
		}
		roll -= p
	}
	return 0
}

// pickAvailableToken consumes one random draw to choose a starting index in
// the class's token pool, then scans the pool with wrap-around for the first
// token whose remaining capacity at the owner covers requiredAmount.
func (s *service) pickAvailableToken(ctx context.Context, f factory.Factory, classID domain.ClassID, requiredAmount uint64, owner string) (uint64, error) {
	pool := s.classTokens[classID]
	if len(pool) == 0 {
		return 0, fmt.Errorf("%w: class %d", domain.ErrEmptyClassPool, classID)
	}

	value := s.rnd.Draw(owner)
	start := int(new(big.Int).Mod(value, big.NewInt(int64(len(pool)))).Int64())

	for i := 0; i < len(pool); i++ {
		tokenID := pool[(start+i)%len(pool)]
		balance, err := f.BalanceOf(ctx, owner, tokenID)
		if err != nil {
			return 0, fmt.Errorf("capacity check for token %d: %w", tokenID, err)
		}
		if balance >= requiredAmount {
			return tokenID, nil
		}
	}

	return 0, fmt.Errorf("%w: class %d has no token with capacity %d", domain.ErrInsufficientSupply, classID, requiredAmount)
}
