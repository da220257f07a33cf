package agent

// State is one evaluator lifecycle position. The machine is
// initializing → idle ⇄ busy, with error reachable from busy (task failure)
// or initializing (setup failure), and offline terminal via shutdown. Error is
// not terminal: a successful recovery health check returns the evaluator to
// idle.
type State string

const (
	StateInitializing State = "initializing"
	StateIdle         State = "idle"
	StateBusy         State = "busy"
	StateError        State = "error"
	StateOffline      State = "offline"
)

var transitions = map[State][]State{
	StateInitializing: {StateIdle, StateError, StateOffline},
	StateIdle:         {StateBusy, StateInitializing, StateOffline},
	StateBusy:         {StateIdle, StateError, StateOffline},
	StateError:        {StateIdle, StateInitializing, StateOffline},
	StateOffline:      {},
}

// ValidTransition reports whether the lifecycle permits moving from one state
// to another. Self-transitions are always allowed (idempotent operations).
func ValidTransition(from, to State) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
