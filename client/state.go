package client

// State is the client connection lifecycle (spec §4.2).
type State int

const (
	StateClosed State = iota
	StateTCPOpen
	StateNBSSReady
	StateNegotiated
	StateAuthed
	StateReady
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateTCPOpen:
		return "TCP_OPEN"
	case StateNBSSReady:
		return "NBSS_READY"
	case StateNegotiated:
		return "NEGOTIATED"
	case StateAuthed:
		return "AUTHED"
	case StateReady:
		return "READY"
	default:
		return "UNKNOWN"
	}
}
