package board

// AttackedSquares returns the cells p can move to or capture on from its
// current cell. A nil piece yields the empty set.
func (b *Board) AttackedSquares(p *Piece) CellSet {
	if p == nil {
		return 0
	}
	return b.AttackedSquaresFrom(p, p.Cell)
}

// AttackedSquaresFrom is AttackedSquares with p considered standing on from.
//
// Sliding pieces include the first occupied cell in each direction when it
// holds an enemy and stop there. A friendly or off-board cell ends a
// direction without being included. Pawns step forward onto empty cells
// only, capture diagonally only onto enemies, and may advance two cells
// before their first move when the cell in between is empty.
func (b *Board) AttackedSquaresFrom(p *Piece, from Cell) CellSet {
	var set CellSet
	if p == nil || !from.Valid() || p.Type >= NoPieceType || p.Color > Black {
		return set
	}

	for _, d := range templates[p.Type] {
		d = d.Orient(p.Color)
		if !p.Type.Sliding() {
			if to := from.Add(d); b.markable(p.Color, to) {
				set = set.Add(to)
			}
			continue
		}
		for to := from.Add(d); b.markable(p.Color, to); to = to.Add(d) {
			set = set.Add(to)
			if b.PieceAt(to) != nil {
				break
			}
		}
	}

	if p.Type == Pawn {
		set = b.pawnExtras(p, from, set)
	}
	return set
}

// markable reports whether a piece of color c may land on to.
func (b *Board) markable(c Color, to Cell) bool {
	if !to.Valid() {
		return false
	}
	occ := b.PieceAt(to)
	return occ == nil || occ.Color != c
}

func (b *Board) pawnExtras(p *Piece, from Cell, set CellSet) CellSet {
	fwd := Dir{DC: 0, DR: 1}.Orient(p.Color)
	ahead := from.Add(fwd)
	blocked := b.PieceAt(ahead) != nil

	if !p.HasMoved && !blocked && ahead.Valid() {
		if two := ahead.Add(fwd); b.markable(p.Color, two) {
			set = set.Add(two)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		diag := from.Add(Dir{DC: dc, DR: fwd.DR})
		if occ := b.PieceAt(diag); occ != nil && occ.Color != p.Color {
			set = set.Add(diag)
		}
	}

	if blocked {
		set = set.Remove(ahead)
	}
	return set
}
