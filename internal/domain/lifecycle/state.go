// internal/domain/lifecycle/state.go
package lifecycle

// State describes the shared lifecycle of every cached collection:
// Uninitialized -> Loading -> {Populated, Errored}, returning to Loading
// on any re-fetch trigger. There is no terminal state.
type State int

const (
	Uninitialized State = iota
	Loading
	Populated
	Errored
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	case Errored:
		return "errored"
	default:
		return "uninitialized"
	}
}
