package ledger

// EffectDirection is the sign an operation kind applies to stock.
type EffectDirection int

const (
	Increase EffectDirection = 1
	Decrease EffectDirection = -1
)

// directions is the closed effect table. An unknown kind has no entry and
// is rejected during validation, never treated as a no-op.
var directions = map[Kind]EffectDirection{
	KindSupply:   Increase,
	KindReturn:   Increase,
	KindSale:     Decrease,
	KindWriteoff: Decrease,
}

// Direction returns the stock effect of a kind. Returns 0 for unknown
// kinds; callers validate with ValidKind first.
func Direction(kind Kind) EffectDirection {
	return directions[kind]
}

// ValidKind reports whether the kind belongs to the closed enumeration.
func ValidKind(kind Kind) bool {
	_, ok := directions[kind]
	return ok
}

// Kinds returns all valid kinds, for API enumeration.
func Kinds() []Kind {
	return []Kind{KindSupply, KindReturn, KindSale, KindWriteoff}
}
