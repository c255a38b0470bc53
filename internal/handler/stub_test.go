package handler

import (
	"context"
	"math/big"

	"github.com/babilu-online/lootbox-contract/internal/domain"
	"github.com/babilu-online/lootbox-contract/internal/engine"
)

// stubService implements engine.Service with overridable function fields.
// Methods without an override return zero values.
type stubService struct {
	addOptionFn         func(ctx context.Context, p engine.AddOptionParams) (uint32, error)
	setOptionSettingsFn func(ctx context.Context, option uint32, cfg engine.OptionConfig) error
	setTokenIDsFn       func(ctx context.Context, option, localClass uint32, tokenIDs []uint64) error
	tokenIDsFn          func(ctx context.Context, option, localClass uint32) ([]uint64, error)
	optionFn            func(ctx context.Context, option uint32) (domain.OptionSettings, error)
	optionCountFn       func(ctx context.Context) uint32
	setSeedFn           func(ctx context.Context, seed *big.Int) error
	openBoxesFn         func(ctx context.Context, option uint32, to string, boxCount uint32, owner string) (*engine.OpenResult, error)
}

func (s *stubService) AddOption(ctx context.Context, p engine.AddOptionParams) (uint32, error) {
	if s.addOptionFn != nil {
		return s.addOptionFn(ctx, p)
	}
	return 0, nil
}

func (s *stubService) SetOptionSettings(ctx context.Context, option uint32, cfg engine.OptionConfig) error {
	if s.setOptionSettingsFn != nil {
		return s.setOptionSettingsFn(ctx, option, cfg)
	}
	return nil
}

func (s *stubService) SetTokenIDsForClass(ctx context.Context, option, localClass uint32, tokenIDs []uint64) error {
	if s.setTokenIDsFn != nil {
		return s.setTokenIDsFn(ctx, option, localClass, tokenIDs)
	}
	return nil
}

func (s *stubService) TokenIDsForClass(ctx context.Context, option, localClass uint32) ([]uint64, error) {
	if s.tokenIDsFn != nil {
		return s.tokenIDsFn(ctx, option, localClass)
	}
	return nil, nil
}

func (s *stubService) Option(ctx context.Context, option uint32) (domain.OptionSettings, error) {
	if s.optionFn != nil {
		return s.optionFn(ctx, option)
	}
	return domain.OptionSettings{}, nil
}

func (s *stubService) OptionCount(ctx context.Context) uint32 {
	if s.optionCountFn != nil {
		return s.optionCountFn(ctx)
	}
	return 0
}

func (s *stubService) SetSeed(ctx context.Context, seed *big.Int) error {
	if s.setSeedFn != nil {
		return s.setSeedFn(ctx, seed)
	}
	return nil
}

func (s *stubService) OpenBoxes(ctx context.Context, option uint32, to string, boxCount uint32, owner string) (*engine.OpenResult, error) {
	if s.openBoxesFn != nil {
		return s.openBoxesFn(ctx, option, to, boxCount, owner)
	}
	return &engine.OpenResult{}, nil
}
