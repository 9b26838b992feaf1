package cpu

// State is the result of executing instructions.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_PAUSED  = State(1) // paused
	STATE_AWAIT   = State(2) // await
	STATE_HALTED  = State(3) // halted
	STATE_FAULTED = State(4) // faulted
)
