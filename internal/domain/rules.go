package domain

// CanPlayOver decides whether candidate may be placed on top of the current table hand.
// A nil table means the player is leading a new trick.
func CanPlayOver(candidate Classification, table *Classification) bool {
	if !candidate.Valid() {
		return false
	}
	if table == nil || !table.Valid() {
		return true
	}

	// Bombs chop any non-bomb five-card hand regardless of strength.
	if candidate.Type.IsBomb() && table.Size() == 5 && !table.Type.IsBomb() {
		return true
	}

	if candidate.Size() != table.Size() {
		return false
	}

	if candidate.Type != table.Type {
		return candidate.Type == StraightFlush && table.Type == FourOfAKind
	}

	return candidate.Key.Compare(table.Key) > 0
}
