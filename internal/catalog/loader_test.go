package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babilu-online/lootbox-contract/internal/engine"
	"github.com/babilu-online/lootbox-contract/internal/event"
	"github.com/babilu-online/lootbox-contract/internal/factory"
	"github.com/babilu-online/lootbox-contract/internal/rng"
)

const testCatalog = `
version: "1.0"
options:
  - name: starter-crate
    max_quantity_per_open: 3
    class_start: 0
    num_classes: 4
    class_probabilities: [0, 3000, 500, 100]
    guarantees: [0, 0, 0, 0]
    tokens:
      common: [1, 2]
      uncommon: [101, 102]
      rare: [201]
      epic: [301]
  - name: premium-crate
    max_quantity_per_open: 5
    class_start: 4
    num_classes: 4
    class_probabilities: [0, 4000, 1500, 400]
    guarantees: [0, 1, 0, 0]
    tokens:
      uncommon: [401]
      rare: [501]
      epic: [601]
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadParsesCatalog(t *testing.T) {
	config, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)

	require.Len(t, config.Options, 2)
	assert.Equal(t, "starter-crate", config.Options[0].Name)
	assert.Equal(t, []uint16{0, 3000, 500, 100}, config.Options[0].ClassProbabilities)
	assert.Equal(t, []uint64{401}, config.Options[1].Tokens.Uncommon)
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	_, err := Load(writeCatalog(t, "version: \"1.0\"\noptions: []\n"))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	dup := `
options:
  - name: crate
    num_classes: 1
    class_probabilities: [0]
    guarantees: [0]
  - name: crate
    num_classes: 1
    class_probabilities: [0]
    guarantees: [0]
`
	_, err := Load(writeCatalog(t, dup))
	assert.ErrorIs(t, err, ErrDuplicateOptionName)
}

func TestApplyRegistersOptions(t *testing.T) {
	ctx := context.Background()
	config, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)

	src := rng.NewSource(nil, rng.FixedEntropy([]byte("e")))
	svc := engine.NewService(factory.NewMemoryFactory(), src, event.NewMemoryBus())

	ids, err := Apply(ctx, config, svc)
	require.NoError(t, err)

	assert.Equal(t, map[string]uint32{"starter-crate": 0, "premium-crate": 1}, ids)
	assert.Equal(t, uint32(2), svc.OptionCount(ctx))

	common, err := svc.TokenIDsForClass(ctx, ids["starter-crate"], engine.ClassCommon)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, common)

	premium, err := svc.Option(ctx, ids["premium-crate"])
	require.NoError(t, err)
	assert.True(t, premium.HasGuaranteedClasses)
	assert.EqualValues(t, 4, premium.ClassStart)
}
