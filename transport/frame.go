// Package transport owns the single TCP connection to the target's file
// service port, frames NetBIOS Session Service (NBSS) messages on it, and
// tracks the per-connection SMB1 multiplex state (TID/UID/PID/MID).
package transport

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// NBSS frame types (§4.1).
const (
	FrameSessionMessage      byte = 0x00
	FrameSessionRequest      byte = 0x81
	FramePositiveSessionResp byte = 0x82
	FrameNegativeSessionResp byte = 0x83
	FrameRetargetSessionResp byte = 0x84
	FrameKeepAlive           byte = 0x85
)

const lengthExtensionBit = 0x01

// maxNBSSLength is the largest payload a 17-bit length field can carry.
const maxNBSSLength = 1<<17 - 1

// EncodeFrame wraps payload in an NBSS frame of the given type.
func EncodeFrame(typ byte, payload []byte) ([]byte, error) {
	if len(payload) > maxNBSSLength {
		return nil, fmt.Errorf("transport: payload too long for NBSS frame (%d bytes)", len(payload))
	}

	length := uint32(len(payload))
	flags := byte(0)
	if length > 0xffff {
		flags |= lengthExtensionBit
	}

	frame := make([]byte, 4+len(payload))
	frame[0] = typ
	frame[1] = flags
	binary.BigEndian.PutUint16(frame[2:4], uint16(length))
	copy(frame[4:], payload)
	return frame, nil
}

// ReadFrame reads one NBSS frame from conn, returning its type and payload.
func ReadFrame(conn net.Conn) (typ byte, payload []byte, err error) {
	hdr := make([]byte, 4)
	if _, err = io.ReadFull(conn, hdr); err != nil {
		return 0, nil, fmt.Errorf("transport: reading NBSS header: %w", err)
	}

	typ = hdr[0]
	length := uint32(binary.BigEndian.Uint16(hdr[2:4]))
	if hdr[1]&lengthExtensionBit != 0 {
		length |= 1 << 16
	}

	payload = make([]byte, length)
	if length > 0 {
		if _, err = io.ReadFull(conn, payload); err != nil {
			return 0, nil, fmt.Errorf("transport: reading NBSS payload: %w", err)
		}
	}
	return typ, payload, nil
}

// WriteFrame encodes and writes a single NBSS frame to conn.
func WriteFrame(conn net.Conn, typ byte, payload []byte) error {
	frame, err := EncodeFrame(typ, payload)
	if err != nil {
		return err
	}
	n, err := conn.Write(frame)
	if err != nil {
		return fmt.Errorf("transport: writing NBSS frame: %w", err)
	}
	if n != len(frame) {
		return fmt.Errorf("transport: short write: wrote %d of %d bytes", n, len(frame))
	}
	return nil
}
