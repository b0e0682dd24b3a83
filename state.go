package htmltox

import "fmt"

// State is the lifecycle stage of a conversion.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateConfigured
	StateConverting
	StateConverted
	StateFailed
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateConfigured:
		return "configured"
	case StateConverting:
		return "converting"
	case StateConverted:
		return "converted"
	case StateFailed:
		return "failed"
	case StateTornDown:
		return "torn down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// transitions lists the legal next states. TornDown is reachable from every
// state after Initialized.
var transitions = map[State][]State{
	StateUninitialized: {StateInitialized},
	StateInitialized:   {StateConfigured, StateTornDown},
	StateConfigured:    {StateConverting, StateTornDown},
	StateConverting:    {StateConverted, StateFailed, StateTornDown},
	StateConverted:     {StateTornDown},
	StateFailed:        {StateTornDown},
	StateTornDown:      {StateUninitialized},
}

// canTransition reports whether from -> to is a legal step.
func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
