package engine

// ============================================================================
// Probability Basis
// ============================================================================

// BasisPoints is the probability basis for class tables: every random class
// draw is reduced into [0, BasisPoints).
const BasisPoints = 10000

// ============================================================================
// Named Tiers
// ============================================================================

// Local class indices for the three named tiers seeded by AddOption.
// Local class 0 is the implicit common tier and starts with an empty pool.
const (
	ClassCommon   = 0
	ClassUncommon = 1
	ClassRare     = 2
	ClassEpic     = 3
)

// ============================================================================
// Warning Messages
// ============================================================================

const (
	WarnMsgProbabilityOverflow = "class probability table exceeds 10000 basis points; class 0 will never be drawn as intended"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgOptionAdded        = "Option added"
	LogMsgOptionReconfigured = "Option settings replaced"
	LogMsgTokenPoolReplaced  = "Class token pool replaced"
	LogMsgSeedOverridden     = "Pseudo-random seed overridden"
	LogMsgBoxesOpened        = "Boxes opened"
	LogMsgOpenFailed         = "Box opening failed"
)

// Log field keys for structured logging
const (
	LogFieldOption = "option"
	LogFieldClass  = "class"
	LogFieldBuyer  = "buyer"
	LogFieldBoxes  = "boxes"
	LogFieldMinted = "minted"
	LogFieldError  = "error"
)
