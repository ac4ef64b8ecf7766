package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is returned when a FEN string cannot be loaded.
var ErrInvalidFEN = errors.New("invalid FEN")

var fenPieces = [2][6]chess.Piece{
	White: {chess.WhitePawn, chess.WhiteKnight, chess.WhiteBishop, chess.WhiteRook, chess.WhiteQueen, chess.WhiteKing},
	Black: {chess.BlackPawn, chess.BlackKnight, chess.BlackBishop, chess.BlackRook, chess.BlackQueen, chess.BlackKing},
}

// ParseFEN builds a board from a FEN string. Only placement and side to move
// are used. Pieces that do not stand on their starting cell are marked as
// moved, so pawns off their second rank lose the double step.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	switch len(fields) {
	case 1:
		fields = append(fields, "w", "-", "-", "0", "1")
	case 2:
		fields = append(fields, "-", "-", "0", "1")
	case 4:
		fields = append(fields, "0", "1")
	}

	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	pos := chess.NewGame(opt).Position()

	b := NewBoard()
	if pos.Turn() == chess.Black {
		b.SideToMove = Black
	}
	for sq := chess.A1; sq <= chess.H8; sq++ {
		cp := pos.Board().Piece(sq)
		if cp == chess.NoPiece {
			continue
		}
		pt, color, ok := fromChessPiece(cp)
		if !ok {
			return nil, fmt.Errorf("%w: unknown piece on %s", ErrInvalidFEN, sq)
		}
		c := NewCell(int(sq.File()), int(sq.Rank()))
		p := b.AddPiece(pt, color, c)
		p.HasMoved = !onStartCell(pt, color, c)
	}
	return b, nil
}

// MustParseFEN is ParseFEN for known-good input. It panics on error.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// FEN returns the board in FEN. Castling and en passant fields are always "-".
func (b *Board) FEN() string {
	m := make(map[chess.Square]chess.Piece, len(b.roster))
	for _, p := range b.roster {
		if i := p.Cell.Index(); i >= 0 && p.Type <= King && p.Color <= Black {
			m[chess.Square(i)] = fenPieces[p.Color][p.Type]
		}
	}
	side := "w"
	if b.SideToMove == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", chess.NewBoard(m).String(), side)
}

func fromChessPiece(cp chess.Piece) (PieceType, Color, bool) {
	color := White
	if cp.Color() == chess.Black {
		color = Black
	}
	switch cp.Type() {
	case chess.Pawn:
		return Pawn, color, true
	case chess.Knight:
		return Knight, color, true
	case chess.Bishop:
		return Bishop, color, true
	case chess.Rook:
		return Rook, color, true
	case chess.Queen:
		return Queen, color, true
	case chess.King:
		return King, color, true
	}
	return NoPieceType, NoColor, false
}

func onStartCell(pt PieceType, c Color, cell Cell) bool {
	home, pawnRow := 0, 1
	if c == Black {
		home, pawnRow = 7, 6
	}
	if pt == Pawn {
		return cell.Row == pawnRow
	}
	return cell.Row == home && backRank[cell.Col] == pt
}
