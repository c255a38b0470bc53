// Package postgres implements the token factory as a durable supply ledger
// on PostgreSQL. balanceOf is max_supply minus minted; a mint is a guarded
// update that can never push minted past max_supply, plus an append to the
// mint log.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/babilu-online/lootbox-contract/internal/domain"
	"github.com/babilu-online/lootbox-contract/internal/factory"
)

// maxSupplyCacheSize bounds the cache of immutable max_supply rows.
const maxSupplyCacheSize = 4096

// querier is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Factory is the PostgreSQL-backed token factory. It satisfies
// factory.Factory, factory.Transactional and factory.Provisioner.
type Factory struct {
	pool *pgxpool.Pool
	db   querier

	// max_supply never changes after registration, so it is safe to cache
	// across transactions. minted is always read fresh.
	maxSupply *lru.Cache[uint64, uint64]
}

// NewFactory creates a factory backed by the given connection pool.
func NewFactory(pool *pgxpool.Pool) (*Factory, error) {
	cache, err := lru.New[uint64, uint64](maxSupplyCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create max-supply cache: %w", err)
	}
	return &Factory{pool: pool, db: pool, maxSupply: cache}, nil
}

// RegisterToken inserts or replaces a token's supply row. The minted count
// survives re-registration.
func (f *Factory) RegisterToken(ctx context.Context, tokenID uint64, owner string, maxSupply uint64) error {
	_, err := f.db.Exec(ctx, `
		INSERT INTO token_supply (token_id, owner, max_supply)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_id)
		DO UPDATE SET owner = EXCLUDED.owner, max_supply = EXCLUDED.max_supply`,
		int64(tokenID), owner, int64(maxSupply))
	if err != nil {
		return fmt.Errorf("failed to register token %d: %w", tokenID, err)
	}

	f.maxSupply.Add(tokenID, maxSupply)
	return nil
}

// BalanceOf returns the remaining mintable capacity for the token at the
// given owner context. Unregistered tokens report zero capacity.
func (f *Factory) BalanceOf(ctx context.Context, owner string, tokenID uint64) (uint64, error) {
	var minted int64

	if max, ok := f.maxSupply.Get(tokenID); ok {
		err := f.db.QueryRow(ctx,
			`SELECT minted FROM token_supply WHERE token_id = $1 AND owner = $2`,
			int64(tokenID), owner).Scan(&minted)
		if errors.Is(err, pgx.ErrNoRows) {
			// Cached under a different owner; treat as no capacity.
			return 0, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to query minted for token %d: %w", tokenID, err)
		}
		return max - uint64(minted), nil
	}

	var maxSupply int64
	err := f.db.QueryRow(ctx,
		`SELECT max_supply, minted FROM token_supply WHERE token_id = $1 AND owner = $2`,
		int64(tokenID), owner).Scan(&maxSupply, &minted)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query supply for token %d: %w", tokenID, err)
	}

	f.maxSupply.Add(tokenID, uint64(maxSupply))
	return uint64(maxSupply - minted), nil
}

// Mint consumes capacity and appends to the mint log. The guarded UPDATE
// makes over-minting impossible even if a stale capacity check slipped
// through.
func (f *Factory) Mint(ctx context.Context, tokenID uint64, to string, amount uint64, data []byte) error {
	tag, err := f.db.Exec(ctx, `
		UPDATE token_supply
		SET minted = minted + $2
		WHERE token_id = $1 AND minted + $2 <= max_supply`,
		int64(tokenID), int64(amount))
	if err != nil {
		return fmt.Errorf("failed to mint token %d: %w", tokenID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: token %d", domain.ErrInsufficientSupply, tokenID)
	}

	_, err = f.db.Exec(ctx,
		`INSERT INTO mint_log (token_id, recipient, amount, data) VALUES ($1, $2, $3, $4)`,
		int64(tokenID), to, int64(amount), data)
	if err != nil {
		return fmt.Errorf("failed to record mint of token %d: %w", tokenID, err)
	}

	return nil
}

// WithinTx runs fn against a transaction-scoped factory, committing on nil
// and rolling back on error.
func (f *Factory) WithinTx(ctx context.Context, fn func(tx factory.Factory) error) error {
	pgtx, err := f.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = pgtx.Rollback(ctx) }()

	scoped := &Factory{pool: f.pool, db: pgtx, maxSupply: f.maxSupply}
	if err := fn(scoped); err != nil {
		return err
	}

	if err := pgtx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
