package board

import (
	"slices"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

// Without pawns or castling rights the rules here agree with standard chess,
// so a reference generator must produce the same legal moves.
func TestLegalMovesMatchReference(t *testing.T) {
	positions := []string{
		"4k3/8/8/8/8/8/4R3/4K3 w - - 0 1",
		"k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1",
		"r3k2r/8/8/3Q4/8/2n5/8/R3K2R w - - 0 1",
		"r3k2r/8/8/3Q4/8/2n5/8/R3K2R b - - 0 1",
		"8/8/3k4/8/2N1B3/8/8/4K2R b - - 0 1",
		"6k1/8/8/8/8/8/8/R5K1 w - - 0 1",
		"1q5k/8/8/8/8/8/6N1/K7 w - - 0 1",
		"4k3/8/4q3/8/8/8/4B3/4K3 w - - 0 1",
	}

	for _, fen := range positions {
		t.Run(fen, func(t *testing.T) {
			b := MustParseFEN(fen)
			var got []string
			for _, m := range b.GenerateLegalMoves(b.SideToMove) {
				got = append(got, m.String())
			}

			ref := dragontoothmg.ParseFen(fen)
			var want []string
			for _, m := range ref.GenerateLegalMoves() {
				want = append(want, m.String())
			}

			slices.Sort(got)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("moves differ\n got: %v\nwant: %v", got, want)
			}
		})
	}
}
