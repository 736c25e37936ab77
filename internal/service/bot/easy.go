package bot

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
)

// Random drops into a uniformly random legal column.
type Random struct {
	rng *rand.Rand
}

// NewRandom seeds from the clock when seed is zero.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) BestMove(board *domain.Board) (int, error) {
	if err := checkPlayable(board); err != nil {
		return -1, err
	}

	validColumns := board.LegalColumns()
	return validColumns[r.rng.Intn(len(validColumns))], nil
}
