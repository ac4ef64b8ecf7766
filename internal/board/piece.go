package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Sign returns +1 for White and -1 for Black.
func (c Color) Sign() int {
	if c == Black {
		return -1
	}
	return 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	switch string(b) {
	case "White", "white", "w":
		*c = White
	case "Black", "black", "b":
		*c = Black
	default:
		*c = NoColor
	}
	return nil
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (pt PieceType) MarshalText() ([]byte, error) {
	return []byte(pt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pt *PieceType) UnmarshalText(b []byte) error {
	for t := Pawn; t < NoPieceType; t++ {
		if t.String() == string(b) {
			*pt = t
			return nil
		}
	}
	*pt = NoPieceType
	return nil
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// Sliding reports whether the piece repeats its template steps until blocked.
func (pt PieceType) Sliding() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// Piece is a piece on the board. The board that holds a piece owns it; pieces
// are referenced from exactly one cell at a time.
type Piece struct {
	Type     PieceType
	Color    Color
	Cell     Cell
	HasMoved bool
	Value    int
}

// NewPiece creates an off-board piece with its catalog value.
func NewPiece(pt PieceType, c Color) *Piece {
	return &Piece{
		Type:  pt,
		Color: c,
		Cell:  NoCell,
		Value: ValueFor(pt),
	}
}

// Char returns the FEN letter, uppercase for White.
func (p *Piece) Char() byte {
	ch := p.Type.Char()
	if p.Color == White {
		return ch - 'a' + 'A'
	}
	return ch
}

// String returns e.g. "White Knight on g1".
func (p *Piece) String() string {
	return p.Color.String() + " " + p.Type.String() + " on " + p.Cell.String()
}
