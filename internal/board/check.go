package board

// AttackedBy returns the union of the attacked squares of every piece of c.
func (b *Board) AttackedBy(c Color) CellSet {
	var set CellSet
	for _, p := range b.roster {
		if p.Color == c {
			set = set.Union(b.AttackedSquares(p))
		}
	}
	return set
}

// IsInCheck reports whether the king of c stands on a cell attacked by the
// other side. It is computed from scratch on every call. A side without a
// king is never in check.
func (b *Board) IsInCheck(c Color) bool {
	king := b.King(c)
	if king == nil {
		return false
	}
	return b.AttackedBy(c.Other()).Has(king.Cell)
}

// RefreshCheck recomputes both check flags from the current position.
func (b *Board) RefreshCheck() {
	b.Check[White] = b.IsInCheck(White)
	b.Check[Black] = b.IsInCheck(Black)
}
