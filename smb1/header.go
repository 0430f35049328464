// Package smb1 implements the wire-level SMB1/CIFS header, command and
// status constants, and the small set of request/response parameter
// layouts this client uses.
package smb1

import "encoding/binary"

// HeaderSize is the length in bytes of the fixed SMB1 header.
const HeaderSize = 32

// Header is the fixed 32-byte SMB1 message header (§4.1).
type Header struct {
	Command          uint8
	Status           uint32
	Flags            uint8
	Flags2           uint16
	ProcessID        uint16
	SecurityFeatures [8]byte
	TreeID           uint16
	UserID           uint16
	MuxID            uint16
}

// Decode parses a Header from the first HeaderSize bytes of buf.
func (h *Header) Decode(buf []byte) error {
	if len(buf) < HeaderSize {
		return ErrWrongStructureLength
	}

	protocol := binary.LittleEndian.Uint32(buf[:4])
	if protocol != ProtocolID {
		return ErrWrongProtocol
	}

	h.Command = buf[4]
	h.Status = binary.LittleEndian.Uint32(buf[5:9])
	h.Flags = buf[9]
	h.Flags2 = binary.LittleEndian.Uint16(buf[10:12])

	ph := binary.LittleEndian.Uint16(buf[12:14])
	pl := binary.LittleEndian.Uint16(buf[26:28])
	h.ProcessID = pl
	_ = ph // PIDHigh is always zero for this client; only PIDLow is meaningful.

	copy(h.SecurityFeatures[:], buf[14:22])

	h.TreeID = binary.LittleEndian.Uint16(buf[24:26])
	h.UserID = binary.LittleEndian.Uint16(buf[28:30])
	h.MuxID = binary.LittleEndian.Uint16(buf[30:32])

	return nil
}

// Encode writes the Header into the first HeaderSize bytes of buf.
func (h *Header) Encode(buf []byte) error {
	if len(buf) < HeaderSize {
		return ErrWrongStructureLength
	}

	binary.LittleEndian.PutUint32(buf[:4], ProtocolID)
	buf[4] = h.Command
	binary.LittleEndian.PutUint32(buf[5:9], h.Status)
	buf[9] = h.Flags
	binary.LittleEndian.PutUint16(buf[10:12], h.Flags2)
	binary.LittleEndian.PutUint16(buf[12:14], 0) // PIDHigh

	copy(buf[14:22], h.SecurityFeatures[:])

	binary.LittleEndian.PutUint16(buf[24:26], h.TreeID)
	binary.LittleEndian.PutUint16(buf[26:28], h.ProcessID)
	binary.LittleEndian.PutUint16(buf[28:30], h.UserID)
	binary.LittleEndian.PutUint16(buf[30:32], h.MuxID)

	return nil
}
