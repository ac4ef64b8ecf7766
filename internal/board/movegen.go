package board

// GeneratePseudoMoves returns every move of color c given by the attacked
// squares of its pieces, without regard to the mover's king.
func (b *Board) GeneratePseudoMoves(c Color) []Move {
	moves := make([]Move, 0, 48)
	for _, p := range b.roster {
		if p.Color != c {
			continue
		}
		from := p.Cell
		b.AttackedSquares(p).ForEach(func(to Cell) {
			moves = append(moves, Move{From: from, To: to})
		})
	}
	return moves
}

// GenerateLegalMoves returns the moves of color c that do not leave its own
// king attacked.
func (b *Board) GenerateLegalMoves(c Color) []Move {
	return b.filterLegalMoves(c, b.GeneratePseudoMoves(c))
}

func (b *Board) filterLegalMoves(c Color, pseudo []Move) []Move {
	legal := pseudo[:0]
	for _, m := range pseudo {
		if _, ok := b.TryMove(m); ok {
			legal = append(legal, m)
		}
	}
	return legal
}

// TryMove applies m to a copy of the board and reports whether the mover's
// king is safe afterwards. The receiver is never modified. The copy is
// returned in both cases so callers can inspect a rejected position.
func (b *Board) TryMove(m Move) (*Board, bool) {
	p := b.PieceAt(m.From)
	if p == nil {
		return nil, false
	}
	scratch := b.Clone()
	if _, ok := scratch.MakeMove(m); !ok {
		return nil, false
	}
	return scratch, !scratch.IsInCheck(p.Color)
}

// IsLegal reports whether m moves a piece of the side to move onto one of its
// attacked squares without exposing its king.
func (b *Board) IsLegal(m Move) bool {
	p := b.PieceAt(m.From)
	if p == nil || p.Color != b.SideToMove {
		return false
	}
	if !b.AttackedSquares(p).Has(m.To) {
		return false
	}
	_, ok := b.TryMove(m)
	return ok
}

// HasLegalMove reports whether c has at least one legal move.
func (b *Board) HasLegalMove(c Color) bool {
	for _, m := range b.GeneratePseudoMoves(c) {
		if _, ok := b.TryMove(m); ok {
			return true
		}
	}
	return false
}
