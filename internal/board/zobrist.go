package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][cell index]
	zobristUnmoved    [2][64]uint64    // pawns that may still double-step
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for i := 0; i < 64; i++ {
				zobristPiece[c][pt][i] = rng.next()
			}
		}
	}
	for c := White; c <= Black; c++ {
		for i := 0; i < 64; i++ {
			zobristUnmoved[c][i] = rng.next()
		}
	}
	zobristSideToMove = rng.next()
}

// Hash returns the Zobrist hash of the placement, the pawn double-step
// rights and the side to move. Score and check flags are not included.
func (b *Board) Hash() uint64 {
	var h uint64
	for _, p := range b.roster {
		i := p.Cell.Index()
		if i < 0 || p.Type > King || p.Color > Black {
			continue
		}
		h ^= zobristPiece[p.Color][p.Type][i]
		if p.Type == Pawn && !p.HasMoved {
			h ^= zobristUnmoved[p.Color][i]
		}
	}
	if b.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
