package transition

// Tier tells which of the fallback keys matched during resolution.
type Tier int

// Tiers, from no match to the most specific key.
const (
	TierNone Tier = iota
	TierBase
	TierTyped
	TierVariant
)

func (t Tier) String() string {
	switch t {
	case TierBase:
		return "base"
	case TierTyped:
		return "typed"
	case TierVariant:
		return "variant"
	default:
		return "none"
	}
}

// Found tells if the resolution matched any key.
func (t Tier) Found() bool {
	return t != TierNone
}
