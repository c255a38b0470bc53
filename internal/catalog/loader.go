// Package catalog loads the startup option catalog from YAML and registers
// it through the engine's configuration surface.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/babilu-online/lootbox-contract/internal/domain"
	"github.com/babilu-online/lootbox-contract/internal/engine"
	"github.com/babilu-online/lootbox-contract/internal/logger"
)

// Sentinel errors for catalog loading
var (
	ErrDuplicateOptionName = errors.New("duplicate option name")
	ErrInvalidCatalog      = errors.New("invalid catalog")
)

// Config represents the YAML catalog of options.
type Config struct {
	Version string      `yaml:"version"`
	Options []OptionDef `yaml:"options"`
}

// OptionDef is a single option definition in the catalog.
type OptionDef struct {
	Name               string   `yaml:"name"`
	MaxQuantityPerOpen uint32   `yaml:"max_quantity_per_open"`
	ClassStart         uint32   `yaml:"class_start"`
	NumClasses         uint32   `yaml:"num_classes"`
	ClassProbabilities []uint16 `yaml:"class_probabilities"`
	Guarantees         []uint32 `yaml:"guarantees"`
	Tokens             TierDefs `yaml:"tokens"`
}

// TierDefs holds the initial token pools for the named tiers.
type TierDefs struct {
	Common   []uint64 `yaml:"common"`
	Uncommon []uint64 `yaml:"uncommon"`
	Rare     []uint64 `yaml:"rare"`
	Epic     []uint64 `yaml:"epic"`
}

// Load reads and parses a catalog YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(config *Config) error {
	if len(config.Options) == 0 {
		return fmt.Errorf("%w: no options defined", ErrInvalidCatalog)
	}

	seen := make(map[string]bool, len(config.Options))
	for i, def := range config.Options {
		if def.Name == "" {
			return fmt.Errorf("%w: option %d has no name", ErrInvalidCatalog, i)
		}
		if seen[def.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateOptionName, def.Name)
		}
		seen[def.Name] = true
	}
	return nil
}

// Apply registers every catalog option on the engine in file order and
// returns the allocated option ids keyed by name.
func Apply(ctx context.Context, config *Config, svc engine.Service) (map[string]uint32, error) {
	log := logger.FromContext(ctx)
	ids := make(map[string]uint32, len(config.Options))

	for _, def := range config.Options {
		option, err := svc.AddOption(ctx, engine.AddOptionParams{
			OptionConfig: engine.OptionConfig{
				MaxQuantityPerOpen: def.MaxQuantityPerOpen,
				ClassStart:         domain.ClassID(def.ClassStart),
				NumClasses:         def.NumClasses,
				ClassProbabilities: def.ClassProbabilities,
				Guarantees:         def.Guarantees,
			},
			UncommonTokenIDs: def.Tokens.Uncommon,
			RareTokenIDs:     def.Tokens.Rare,
			EpicTokenIDs:     def.Tokens.Epic,
		})
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", def.Name, err)
		}

		// The common tier has no slot in AddOption; populate it separately.
		if len(def.Tokens.Common) > 0 {
			if err := svc.SetTokenIDsForClass(ctx, option, engine.ClassCommon, def.Tokens.Common); err != nil {
				return nil, fmt.Errorf("option %q common pool: %w", def.Name, err)
			}
		}

		ids[def.Name] = option
		log.Info("Catalog option registered", "name", def.Name, "option", option)
	}

	return ids, nil
}
