// Package match tracks global match progress: the phase machine,
// score, rounds and the kill quota that drives round advance.
package match

// Phase is the overall match progress.
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "Ready"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// transitions lists the phases each operation may leave from.
// Initialize is absent: it is valid from every phase.
var transitions = map[string]map[Phase]Phase{
	"start": {
		PhaseReady: PhasePlaying,
	},
	"pause": {
		PhasePlaying: PhasePaused,
		PhasePaused:  PhasePlaying,
	},
	"gameover": {
		PhaseReady:   PhaseGameOver,
		PhasePlaying: PhaseGameOver,
		PhasePaused:  PhaseGameOver,
	},
}

// next returns the target phase for op from p.
func next(op string, p Phase) (Phase, bool) {
	to, ok := transitions[op][p]
	return to, ok
}
