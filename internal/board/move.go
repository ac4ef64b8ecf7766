package board

import "fmt"

// Move is a relocation of the piece on From to To.
type Move struct {
	From Cell
	To   Cell
}

// NoMove is returned when no move is available.
var NoMove = Move{From: NoCell, To: NoCell}

// NewMove creates a move.
func NewMove(from, to Cell) Move {
	return Move{From: from, To: to}
}

// IsNone reports whether m is NoMove.
func (m Move) IsNone() bool {
	return m == NoMove
}

// String returns the move in coordinate notation (e.g. "e2e4"), or "0000".
func (m Move) String() string {
	if !m.From.Valid() || !m.To.Valid() {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove parses coordinate notation. It does not check legality.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move: %q", s)
	}
	from, err := ParseCell(s[:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseCell(s[2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	return Move{From: from, To: to}, nil
}

// MarshalText encodes the move in coordinate notation.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes coordinate notation. "0000" decodes to NoMove.
func (m *Move) UnmarshalText(b []byte) error {
	if string(b) == "0000" {
		*m = NoMove
		return nil
	}
	mv, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}
