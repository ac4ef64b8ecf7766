package board

import "fmt"

// Material values in centipawns, indexed by PieceType.
var pieceValue = [6]int{
	Pawn:   100,
	Knight: 325,
	Bishop: 325,
	Rook:   500,
	Queen:  975,
	King:   100000,
}

var (
	knightDirs = []Dir{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	bishopDirs = []Dir{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookDirs   = []Dir{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	royalDirs  = []Dir{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	pawnDirs   = []Dir{{0, 1}}
)

// Move templates from White's point of view.
var templates = [6][]Dir{
	Pawn:   pawnDirs,
	Knight: knightDirs,
	Bishop: bishopDirs,
	Rook:   rookDirs,
	Queen:  royalDirs,
	King:   royalDirs,
}

// TemplateFor returns the direction vectors of a piece type. The slice is
// shared and must not be modified. Panics on an unknown type.
func TemplateFor(pt PieceType) []Dir {
	if pt >= NoPieceType {
		panic(fmt.Sprintf("board: no template for piece type %d", pt))
	}
	return templates[pt]
}

// ValueFor returns the material value of a piece type. Panics on an unknown type.
func ValueFor(pt PieceType) int {
	if pt >= NoPieceType {
		panic(fmt.Sprintf("board: no value for piece type %d", pt))
	}
	return pieceValue[pt]
}
