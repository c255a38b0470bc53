package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/babilu-online/lootbox-contract/internal/domain"
	"github.com/babilu-online/lootbox-contract/internal/event"
	"github.com/babilu-online/lootbox-contract/internal/logger"
)

// validateConfig enforces that the probability and guarantee tables are
// sized to the class count. The table contents are the caller's problem
// except for the basis-point overflow hazard, which is reported on the
// Warning channel rather than rejected.
func validateConfig(cfg OptionConfig) error {
	if cfg.NumClasses == 0 {
		return fmt.Errorf("%w: option must have at least one class", domain.ErrInvalidInput)
	}
	if uint32(len(cfg.ClassProbabilities)) != cfg.NumClasses {
		return fmt.Errorf("%w: %d class probabilities for %d classes", domain.ErrInvalidInput, len(cfg.ClassProbabilities), cfg.NumClasses)
	}
	if uint32(len(cfg.Guarantees)) != cfg.NumClasses {
		return fmt.Errorf("%w: %d guarantees for %d classes", domain.ErrInvalidInput, len(cfg.Guarantees), cfg.NumClasses)
	}
	return nil
}

// probabilityMassOverflows reports whether the drawable entries (index 1
// and up) exceed the whole basis, leaving class 0 with no residual mass.
func probabilityMassOverflows(probabilities []uint16) bool {
	sum := 0
	for _, p := range probabilities[1:] {
		sum += int(p)
	}
	return sum > BasisPoints
}

func (s *service) warnOnOverflow(ctx context.Context, cfg OptionConfig) {
	if !probabilityMassOverflows(cfg.ClassProbabilities) {
		return
	}
	logger.FromContext(ctx).Warn(WarnMsgProbabilityOverflow)
	if s.bus != nil {
		_ = s.bus.Publish(ctx, event.NewWarningEvent(WarnMsgProbabilityOverflow, ""))
	}
}

func settingsFromConfig(cfg OptionConfig) *domain.OptionSettings {
	return &domain.OptionSettings{
		Exists:               true,
		MaxQuantityPerOpen:   cfg.MaxQuantityPerOpen,
		ClassProbabilities:   append([]uint16(nil), cfg.ClassProbabilities...),
		HasGuaranteedClasses: domain.AnyGuaranteed(cfg.Guarantees),
		Guarantees:           append([]uint32(nil), cfg.Guarantees...),
		ClassStart:           cfg.ClassStart,
		NumClasses:           cfg.NumClasses,
	}
}

// AddOption registers a new option under the next sequential identifier and
// seeds the three named tier pools. Mutating configuration is rejected while
// a box opening is running.
func (s *service) AddOption(ctx context.Context, p AddOptionParams) (uint32, error) {
	if s.opening.Load() {
		return 0, domain.ErrOpenInProgress
	}
	if err := validateConfig(p.OptionConfig); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	option := s.optionCount
	s.options[option] = settingsFromConfig(p.OptionConfig)
	s.optionCount++

	set := s.options[option]
	for _, tier := range []struct {
		local  uint32
		tokens []uint64
	}{
		{ClassUncommon, p.UncommonTokenIDs},
		{ClassRare, p.RareTokenIDs},
		{ClassEpic, p.EpicTokenIDs},
	} {
		if tier.local < set.NumClasses {
			s.classTokens[set.GlobalClass(tier.local)] = append([]uint64(nil), tier.tokens...)
		}
	}

	s.warnOnOverflow(ctx, p.OptionConfig)
	logger.FromContext(ctx).Info(LogMsgOptionAdded, LogFieldOption, option)
	return option, nil
}

// SetOptionSettings replaces an existing option's configuration wholesale
// and recomputes HasGuaranteedClasses. Token pools are untouched.
func (s *service) SetOptionSettings(ctx context.Context, option uint32, cfg OptionConfig) error {
	if s.opening.Load() {
		return domain.ErrOpenInProgress
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if option >= s.optionCount {
		return fmt.Errorf("%w: option %d, registered %d", domain.ErrOptionOutOfRange, option, s.optionCount)
	}
	s.options[option] = settingsFromConfig(cfg)

	s.warnOnOverflow(ctx, cfg)
	logger.FromContext(ctx).Info(LogMsgOptionReconfigured, LogFieldOption, option)
	return nil
}

// SetTokenIDsForClass replaces one class's token pool wholesale.
func (s *service) SetTokenIDsForClass(ctx context.Context, option uint32, localClass uint32, tokenIDs []uint64) error {
	if s.opening.Load() {
		return domain.ErrOpenInProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.optionSettings(option)
	if err != nil {
		return err
	}
	if localClass >= set.NumClasses {
		return fmt.Errorf("%w: local class %d, option has %d classes", domain.ErrClassOutOfRange, localClass, set.NumClasses)
	}

	s.classTokens[set.GlobalClass(localClass)] = append([]uint64(nil), tokenIDs...)
	logger.FromContext(ctx).Info(LogMsgTokenPoolReplaced, LogFieldOption, option, LogFieldClass, localClass)
	return nil
}

// TokenIDsForClass returns a copy of one class's token pool in storage order.
func (s *service) TokenIDsForClass(_ context.Context, option uint32, localClass uint32) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.optionSettings(option)
	if err != nil {
		return nil, err
	}
	if localClass >= set.NumClasses {
		return nil, fmt.Errorf("%w: local class %d, option has %d classes", domain.ErrClassOutOfRange, localClass, set.NumClasses)
	}

	return append([]uint64(nil), s.classTokens[set.GlobalClass(localClass)]...), nil
}

// Option returns a copy of the option's settings.
func (s *service) Option(_ context.Context, option uint32) (domain.OptionSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.optionSettings(option)
	if err != nil {
		return domain.OptionSettings{}, err
	}
	out := *set
	out.ClassProbabilities = append([]uint16(nil), set.ClassProbabilities...)
	out.Guarantees = append([]uint32(nil), set.Guarantees...)
	return out, nil
}

// OptionCount returns the number of registered options.
func (s *service) OptionCount(_ context.Context) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optionCount
}

// SetSeed overrides the pseudo-random state.
func (s *service) SetSeed(ctx context.Context, seed *big.Int) error {
	if s.opening.Load() {
		return domain.ErrOpenInProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rnd.SetSeed(seed)
	logger.FromContext(ctx).Info(LogMsgSeedOverridden)
	return nil
}

// optionSettings resolves an option id to its settings. Caller holds s.mu.
func (s *service) optionSettings(option uint32) (*domain.OptionSettings, error) {
	if option >= s.optionCount {
		return nil, fmt.Errorf("%w: option %d, registered %d", domain.ErrOptionOutOfRange, option, s.optionCount)
	}
	set, ok := s.options[option]
	if !ok || !set.Exists {
		return nil, fmt.Errorf("%w: option %d", domain.ErrOptionNotConfigured, option)
	}
	return set, nil
}
