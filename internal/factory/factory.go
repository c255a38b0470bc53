// Package factory defines the boundary to the external token factory that
// performs actual issuance. The engine only ever uses the two-operation
// capability set below; it does not know whether a mint creates a new token
// type or adds supply to an existing one.
package factory

import "context"

// Factory is the external collaborator contract consumed by the engine.
type Factory interface {
	// Mint issues amount units of tokenID to the given recipient.
	Mint(ctx context.Context, tokenID uint64, to string, amount uint64, data []byte) error

	// BalanceOf reports how many more units of tokenID the given owner
	// context is still entitled to have minted. The engine uses it purely
	// as a capacity oracle.
	BalanceOf(ctx context.Context, owner string, tokenID uint64) (uint64, error)
}

// Transactional is implemented by factories that can make a batch of mints
// atomic. The engine wraps each box-opening call in WithinTx when available
// so a failed request leaves no partial mints behind.
type Transactional interface {
	WithinTx(ctx context.Context, fn func(tx Factory) error) error
}

// Provisioner is implemented by factories that manage their own supply
// bookkeeping and can register a token's mintable capacity. Provisioning is
// an administrative operation outside the engine's minting path.
type Provisioner interface {
	RegisterToken(ctx context.Context, tokenID uint64, owner string, maxSupply uint64) error
}
