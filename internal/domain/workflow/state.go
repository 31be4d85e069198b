package workflow

// State represents a document status in the procurement lifecycle
type State string

const (
	StateDraft            State = "Draft"
	StateSubmitted        State = "Submitted"
	StateOrdered          State = "Ordered"
	StateRejected         State = "Rejected"
	StateExpired          State = "Expired"
	StateOnHold           State = "On Hold"
	StateToReceiveAndBill State = "To Receive and Bill"
	StateToBill           State = "To Bill"
	StateToReceive        State = "To Receive"
	StateCompleted        State = "Completed"
	StateCancelled        State = "Cancelled"
	StateClosed           State = "Closed"
)

var validStates = map[State]bool{
	StateDraft:            true,
	StateSubmitted:        true,
	StateOrdered:          true,
	StateRejected:         true,
	StateExpired:          true,
	StateOnHold:           true,
	StateToReceiveAndBill: true,
	StateToBill:           true,
	StateToReceive:        true,
	StateCompleted:        true,
	StateCancelled:        true,
	StateClosed:           true,
}

var terminalStates = map[State]bool{
	StateRejected:  true,
	StateExpired:   true,
	StateCompleted: true,
	StateCancelled: true,
}

// IsTerminal returns true if no further transitions are allowed from the state
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known document status
func (s State) IsValid() bool {
	return validStates[s]
}
