package game

// Stage is the phase of a hand.
type Stage int

const (
	PreFlop Stage = iota
	Flop
	Turn
	River
	ShowDown
	Terminal
)

// Streets is the number of betting rounds in a hand.
const Streets = 4

func (s Stage) String() string {
	switch s {
	case PreFlop:
		return "pre_flop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case ShowDown:
		return "show_down"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Round is the betting round index: pre_flop=0 through show_down=4. Terminal has no
// round of its own and reports -1.
func (s Stage) Round() int {
	if s >= PreFlop && s <= ShowDown {
		return int(s)
	}
	return -1
}

// boardSize is how many community cards are visible at the stage.
func (s Stage) boardSize() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River, ShowDown:
		return 5
	default:
		return 0
	}
}
