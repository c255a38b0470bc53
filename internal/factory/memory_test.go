package factory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babilu-online/lootbox-contract/internal/domain"
)

func TestMemoryFactoryCapacity(t *testing.T) {
	ctx := context.Background()
	f := NewMemoryFactory()

	require.NoError(t, f.RegisterToken(ctx, 100, "owner", 5))

	bal, err := f.BalanceOf(ctx, "owner", 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), bal)

	require.NoError(t, f.Mint(ctx, 100, "buyer", 3, nil))

	bal, err = f.BalanceOf(ctx, "owner", 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), bal)
	assert.Equal(t, uint64(3), f.Holdings("buyer", 100))
}

func TestMemoryFactoryMintBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	f := NewMemoryFactory()

	require.NoError(t, f.RegisterToken(ctx, 100, "owner", 2))

	err := f.Mint(ctx, 100, "buyer", 3, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientSupply)

	err = f.Mint(ctx, 200, "buyer", 1, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientSupply, "unregistered token has no capacity")
}

func TestMemoryFactoryUnregisteredBalanceIsZero(t *testing.T) {
	f := NewMemoryFactory()

	bal, err := f.BalanceOf(context.Background(), "owner", 999)
	require.NoError(t, err)
	assert.Zero(t, bal)
}

func TestMemoryFactoryWrongOwner(t *testing.T) {
	ctx := context.Background()
	f := NewMemoryFactory()
	require.NoError(t, f.RegisterToken(ctx, 100, "owner", 5))

	_, err := f.BalanceOf(ctx, "intruder", 100)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMemoryFactoryWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	f := NewMemoryFactory()
	require.NoError(t, f.RegisterToken(ctx, 100, "owner", 10))

	boom := errors.New("boom")
	err := f.WithinTx(ctx, func(tx Factory) error {
		require.NoError(t, tx.Mint(ctx, 100, "buyer", 4, nil))
		return boom
	})
	require.ErrorIs(t, err, boom)

	bal, err := f.BalanceOf(ctx, "owner", 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), bal, "failed transaction must leave no partial mints")
	assert.Zero(t, f.Holdings("buyer", 100))
}

func TestMemoryFactoryWithinTxCommits(t *testing.T) {
	ctx := context.Background()
	f := NewMemoryFactory()
	require.NoError(t, f.RegisterToken(ctx, 100, "owner", 10))

	err := f.WithinTx(ctx, func(tx Factory) error {
		return tx.Mint(ctx, 100, "buyer", 4, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), f.Holdings("buyer", 100))
}
