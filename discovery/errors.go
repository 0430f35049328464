package discovery

import "fmt"

// Kind classifies a discovery failure (spec §7 Discovery subkinds).
type Kind int

const (
	// NoResponders means the WS-Discovery Probe multicast produced no
	// ProbeMatch within the budget.
	NoResponders Kind = iota
	// MetadataUnreachable means a ProbeMatch was received but the
	// DPWS GetMetadata HTTP fetch failed for every candidate address.
	MetadataUnreachable
	// NameUnresolvable means metadata was fetched but no usable
	// NetBIOS/friendly name could be extracted from it.
	NameUnresolvable
	// NeedsUserInput means discovery could not narrow to a single
	// target and the caller must disambiguate (e.g. multiple consoles
	// answered).
	NeedsUserInput
)

func (k Kind) String() string {
	switch k {
	case NoResponders:
		return "NoResponders"
	case MetadataUnreachable:
		return "MetadataUnreachable"
	case NameUnresolvable:
		return "NameUnresolvable"
	case NeedsUserInput:
		return "NeedsUserInput"
	default:
		return "Unknown"
	}
}

// Error is the Discovery error kind from spec §7.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("discovery: %s", e.Kind)
	}
	return fmt.Sprintf("discovery: %s: %s", e.Kind, e.Detail)
}
