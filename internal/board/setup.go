package board

// backRank is the piece order on the first and eighth ranks, files a through h.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandard returns the standard starting position with White to move.
func NewStandard() *Board {
	b := NewBoard()
	for col, pt := range backRank {
		b.AddPiece(pt, White, NewCell(col, 0))
		b.AddPiece(Pawn, White, NewCell(col, 1))
	}
	for col, pt := range backRank {
		b.AddPiece(pt, Black, NewCell(col, 7))
		b.AddPiece(Pawn, Black, NewCell(col, 6))
	}
	return b
}
