package client

import "fmt"

// SmbError is the SmbStatus error kind from spec §7: a well-formed error
// response from the server.
type SmbError struct {
	Command uint8
	Status  uint32
	Name    string
}

func (e *SmbError) Error() string {
	return fmt.Sprintf("client: command 0x%02x failed: %s (0x%08x)", e.Command, e.Name, e.Status)
}

// StateError is the State error kind: an operation was called in the
// wrong lifecycle state (spec §4.2, §7).
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("client: %s not valid in state %s", e.Op, e.State)
}

// ArgumentError is the Argument error kind: a caller-supplied value was
// rejected before any request was sent (e.g. a forbidden path character).
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("client: invalid %s: %s", e.Field, e.Reason)
}

// ProtocolError is the Protocol error kind surfaced by the client layer,
// wrapping a malformed-response condition detected above the transport.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "client: protocol error: " + e.Reason }
