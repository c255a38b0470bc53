package domain

// ClassID is a global class identifier. A class id is only meaningful while
// it falls inside some registered option's [ClassStart, ClassStart+NumClasses)
// range.
type ClassID uint32

// TokenID is the concrete item identifier minted to a buyer.
type TokenID uint64

// OptionSettings holds the per-option loot-box configuration.
//
// ClassProbabilities is indexed by local class index and expressed in basis
// points out of 10000. Index 0 (the common tier) receives the residual
// probability mass implicitly: the picker never reads ClassProbabilities[0],
// so a table whose entries 1..n-1 do not sum to the intended complement
// silently biases allocations toward class 0. This is preserved source
// behavior, not a computed fallback.
type OptionSettings struct {
	Exists               bool
	MaxQuantityPerOpen   uint32
	ClassProbabilities   []uint16
	HasGuaranteedClasses bool
	Guarantees           []uint32
	ClassStart           ClassID
	NumClasses           uint32
}

// GlobalClass maps a local class index to its global class id.
func (s OptionSettings) GlobalClass(local uint32) ClassID {
	return s.ClassStart + ClassID(local)
}

// Enabled reports whether the option can be opened. MaxQuantityPerOpen of
// zero disables an option without deleting it.
func (s OptionSettings) Enabled() bool {
	return s.MaxQuantityPerOpen > 0
}

// AnyGuaranteed reports whether any class carries a nonzero guaranteed drop.
func AnyGuaranteed(guarantees []uint32) bool {
	for _, g := range guarantees {
		if g > 0 {
			return true
		}
	}
	return false
}
