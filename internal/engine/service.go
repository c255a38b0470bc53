package engine

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/babilu-online/lootbox-contract/internal/domain"
	"github.com/babilu-online/lootbox-contract/internal/event"
	"github.com/babilu-online/lootbox-contract/internal/factory"
	"github.com/babilu-online/lootbox-contract/internal/logger"
	"github.com/babilu-online/lootbox-contract/internal/rng"
)

// OptionConfig carries the per-option settings for AddOption and
// SetOptionSettings. ClassProbabilities and Guarantees are indexed by local
// class index and must both have exactly NumClasses entries.
type OptionConfig struct {
	MaxQuantityPerOpen uint32
	ClassStart         domain.ClassID
	NumClasses         uint32
	ClassProbabilities []uint16
	Guarantees         []uint32
}

// AddOptionParams is OptionConfig plus the initial token pools for the three
// named tiers (local classes 1, 2, 3). The common tier starts empty unless
// populated separately via SetTokenIDsForClass.
type AddOptionParams struct {
	OptionConfig
	UncommonTokenIDs []uint64
	RareTokenIDs     []uint64
	EpicTokenIDs     []uint64
}

// Mint records one factory mint performed during a box-opening call.
type Mint struct {
	TokenID  uint64 `json:"token_id"`
	Class    uint32 `json:"class"` // local class index
	Quantity uint64 `json:"quantity"`
}

// OpenResult summarizes a successful box-opening call.
type OpenResult struct {
	Option      uint32 `json:"option"`
	Buyer       string `json:"buyer"`
	BoxesOpened uint32 `json:"boxes_opened"`
	ItemsMinted uint64 `json:"items_minted"`
	Mints       []Mint `json:"mints"`
}

// Service is the loot-box allocation engine: option registry, class-token
// registry, weighted pickers and the mint orchestrator. Authorization is the
// caller's responsibility; every method trusts its inputs are allowed.
type Service interface {
	AddOption(ctx context.Context, p AddOptionParams) (uint32, error)
	SetOptionSettings(ctx context.Context, option uint32, cfg OptionConfig) error
	SetTokenIDsForClass(ctx context.Context, option uint32, localClass uint32, tokenIDs []uint64) error
	TokenIDsForClass(ctx context.Context, option uint32, localClass uint32) ([]uint64, error)
	Option(ctx context.Context, option uint32) (domain.OptionSettings, error)
	OptionCount(ctx context.Context) uint32
	SetSeed(ctx context.Context, seed *big.Int) error
	OpenBoxes(ctx context.Context, option uint32, to string, boxCount uint32, owner string) (*OpenResult, error)
}

type service struct {
	mu      sync.Mutex
	opening atomic.Bool

	factory     factory.Factory
	rnd         *rng.Source
	bus         event.Bus
	optionCount uint32
	options     map[uint32]*domain.OptionSettings
	classTokens map[domain.ClassID][]uint64
}

// NewService creates the engine around a factory collaborator, a random
// source and an event bus.
func NewService(f factory.Factory, src *rng.Source, bus event.Bus) Service {
	return &service{
		factory:     f,
		rnd:         src,
		bus:         bus,
		options:     make(map[uint32]*domain.OptionSettings),
		classTokens: make(map[domain.ClassID][]uint64),
	}
}

// OpenBoxes runs the guaranteed-allocation pass then the randomized fill pass
// for each of boxCount box openings, minting through the factory. The call
// either fully completes or fully fails: on error the seed is rewound and,
// when the factory is transactional, every mint is rolled back.
func (s *service) OpenBoxes(ctx context.Context, option uint32, to string, boxCount uint32, owner string) (*OpenResult, error) {
	// Reject overlap before taking the state lock so a hostile factory
	// calling back into the engine fails instead of deadlocking.
	if !s.opening.CompareAndSwap(false, true) {
		return nil, domain.ErrOpenInProgress
	}
	defer s.opening.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	set, err := s.optionSettings(option)
	if err != nil {
		return nil, err
	}
	if !set.Enabled() {
		return nil, fmt.Errorf("%w: option %d", domain.ErrOptionDisabled, option)
	}

	snap := s.rnd.Snapshot()

	var res *OpenResult
	if tx, ok := s.factory.(factory.Transactional); ok {
		err = tx.WithinTx(ctx, func(f factory.Factory) error {
			res, err = s.openAll(ctx, f, option, set, to, boxCount, owner)
			return err
		})
	} else {
		res, err = s.openAll(ctx, s.factory, option, set, to, boxCount, owner)
	}
	if err != nil {
		s.rnd.Restore(snap)
		log.Error(LogMsgOpenFailed, LogFieldOption, option, LogFieldBuyer, to, LogFieldError, err)
		return nil, err
	}

	log.Info(LogMsgBoxesOpened,
		LogFieldOption, option,
		LogFieldBuyer, to,
		LogFieldBoxes, boxCount,
		LogFieldMinted, res.ItemsMinted)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewBoxesOpenedEvent(option, to, boxCount, res.ItemsMinted)); err != nil {
			log.Error("Failed to publish boxes-opened event", LogFieldError, err)
		}
	}

	return res, nil
}

// openAll performs boxCount sequential box openings against f. Each box
// mints exactly MaxQuantityPerOpen units: the guaranteed minimums first,
// then one randomized unit per fill draw. The fill loop is structurally
// bounded because every iteration either mints one unit or returns an error
// from the availability picker.
func (s *service) openAll(ctx context.Context, f factory.Factory, option uint32, set *domain.OptionSettings, to string, boxCount uint32, owner string) (*OpenResult, error) {
	res := &OpenResult{Option: option, Buyer: to, BoxesOpened: boxCount}

	for b := uint32(0); b < boxCount; b++ {
		quantitySent := uint32(0)

		if set.HasGuaranteedClasses {
			for local, guaranteed := range set.Guarantees {
				if guaranteed == 0 {
					continue
				}
				tokenID, err := s.pickAvailableToken(ctx, f, set.GlobalClass(uint32(local)), uint64(guaranteed), owner)
				if err != nil {
					return nil, err
				}
				if err := f.Mint(ctx, tokenID, to, uint64(guaranteed), nil); err != nil {
					return nil, err
				}
				res.Mints = append(res.Mints, Mint{TokenID: tokenID, Class: uint32(local), Quantity: uint64(guaranteed)})
				quantitySent += guaranteed
			}
		}

		for quantitySent < set.MaxQuantityPerOpen {
			class := s.pickClass(set.ClassProbabilities, owner)
			tokenID, err := s.pickAvailableToken(ctx, f, set.GlobalClass(class), 1, owner)
			if err != nil {
				return nil, err
			}
			if err := f.Mint(ctx, tokenID, to, 1, nil); err != nil {
				return nil, err
			}
			res.Mints = append(res.Mints, Mint{TokenID: tokenID, Class: class, Quantity: 1})
			quantitySent++
		}

		res.ItemsMinted += uint64(quantitySent)
	}

	return res, nil
}
