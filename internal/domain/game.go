package domain

import "fmt"

// Tally counts finished games of one session. It survives resets.
type Tally struct {
	HumanWins    int `json:"human_wins"`
	ComputerWins int `json:"computer_wins"`
	Draws        int `json:"draws"`
}

// Record adds a finished outcome; in-progress outcomes are ignored.
func (t *Tally) Record(o Outcome) {
	switch {
	case o.Kind == Win && o.Winner == Human:
		t.HumanWins++
	case o.Kind == Win && o.Winner == Computer:
		t.ComputerWins++
	case o.Kind == Draw:
		t.Draws++
	}
}

func (t Tally) Games() int {
	return t.HumanWins + t.ComputerWins + t.Draws
}

func (t Tally) String() string {
	return fmt.Sprintf("Player has won %d games and AI has won %d games (%d drawn)", t.HumanWins, t.ComputerWins, t.Draws)
}
