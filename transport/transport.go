package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/anvilsmith/microsdc/smb1"
)

// DefaultTimeout bounds every blocking socket read/write when the caller's
// context carries no deadline.
const DefaultTimeout = 10 * time.Second

// NetKind classifies a NetworkError (spec §7 Network subkinds).
type NetKind int

const (
	NetUnreachable NetKind = iota
	NetTimeout
	NetReset
	NetClosed
)

// NetworkError is the Network error kind from spec §7.
type NetworkError struct {
	Op   string
	Kind NetKind
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError is the Protocol error kind from spec §7: malformed frame,
// unexpected command, MID mismatch, bad signature.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "transport: protocol error: " + e.Reason }

// ErrSessionRefused is returned when the server sends a
// NEGATIVE_SESSION_RESPONSE to our SESSION_REQUEST.
var ErrSessionRefused = errors.New("transport: session refused")

// Transport owns one TCP connection and the SMB1 multiplex state that
// rides on it. It is not safe for concurrent use (spec §5).
type Transport struct {
	conn net.Conn

	tid uint16
	uid uint16
	pid uint16
	mid uint16

	maxBufferSize uint32
	closed        bool
}

// Dial opens a TCP connection to ip:139. pid is the constant process ID
// this client will present for the life of the connection.
func Dial(ctx context.Context, ip string, pid uint16) (*Transport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(ip, "139"))
	if err != nil {
		return nil, &NetworkError{Op: "dial", Kind: classifyDialErr(err), Err: err}
	}
	return &Transport{conn: conn, pid: pid}, nil
}

func classifyDialErr(err error) NetKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NetTimeout
	}
	return NetUnreachable
}

// MaxBufferSize returns the server-reported buffer size captured from the
// NEGOTIATE response, clamping read/write chunking (0 until negotiated).
func (t *Transport) MaxBufferSize() uint32 { return t.maxBufferSize }

// SetMaxBufferSize records the server's MaxBufferSize from NEGOTIATE.
func (t *Transport) SetMaxBufferSize(n uint32) { t.maxBufferSize = n }

// TID, UID, PID, MID expose the current multiplex identifiers.
func (t *Transport) TID() uint16 { return t.tid }
func (t *Transport) UID() uint16 { return t.uid }
func (t *Transport) PID() uint16 { return t.pid }

// SetTID and SetUID record identifiers captured from TREE_CONNECT_ANDX and
// SESSION_SETUP_ANDX responses respectively.
func (t *Transport) SetTID(tid uint16) { t.tid = tid }
func (t *Transport) SetUID(uid uint16) { t.uid = uid }

func (t *Transport) nextMID() uint16 {
	mid := t.mid
	t.mid++
	return mid
}

func (t *Transport) deadline(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		return dl
	}
	return time.Now().Add(DefaultTimeout)
}

// SessionRequest performs the NBSS SESSION_REQUEST handshake, sending
// calledName (the server) and callingName (this client's self-name).
func (t *Transport) SessionRequest(ctx context.Context, calledName, callingName string) error {
	called, err := EncodeNetBIOSName(calledName)
	if err != nil {
		return err
	}
	calling, err := EncodeNetBIOSName(callingName)
	if err != nil {
		return err
	}

	payload := append(append([]byte{}, called...), calling...)

	if err := t.conn.SetDeadline(t.deadline(ctx)); err != nil {
		return &NetworkError{Op: "session-request", Kind: NetClosed, Err: err}
	}
	if err := WriteFrame(t.conn, FrameSessionRequest, payload); err != nil {
		return &NetworkError{Op: "session-request", Kind: t.classifyIOErr(err), Err: err}
	}

	typ, _, err := ReadFrame(t.conn)
	if err != nil {
		return &NetworkError{Op: "session-request", Kind: t.classifyIOErr(err), Err: err}
	}

	switch typ {
	case FramePositiveSessionResp:
		return nil
	case FrameNegativeSessionResp:
		return ErrSessionRefused
	default:
		return &ProtocolError{Reason: fmt.Sprintf("unexpected NBSS frame type 0x%02x after SESSION_REQUEST", typ)}
	}
}

func (t *Transport) classifyIOErr(err error) NetKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NetTimeout
	}
	if errors.Is(err, net.ErrClosed) {
		return NetClosed
	}
	return NetReset
}

// Response is the decoded result of a SendRecv round trip.
type Response struct {
	Header smb1.Header
	Params []byte
	Data   []byte
}

// SendRecv builds an SMB1 message for command with the given WordCount
// parameter words (already including the leading WordCount byte, per
// command encoders in this module) and ByteCount data block, allocates a
// fresh MID, wraps it in an NBSS SESSION_MESSAGE frame, writes it, and
// reads back exactly one frame.
//
// Exactly one request may be outstanding at a time (spec §5); on any I/O
// error or MID mismatch the transport must be considered unusable and
// closed by the caller — this client never attempts to resynchronize.
func (t *Transport) SendRecv(ctx context.Context, command uint8, flags byte, flags2 uint16, params, data []byte) (Response, error) {
	if t.closed {
		return Response{}, &NetworkError{Op: "send-recv", Kind: NetClosed, Err: errors.New("transport closed")}
	}

	mid := t.nextMID()

	hdr := smb1.Header{
		Command:   command,
		Flags:     flags,
		Flags2:    flags2,
		ProcessID: t.pid,
		TreeID:    t.tid,
		UserID:    t.uid,
		MuxID:     mid,
	}

	msg := make([]byte, smb1.HeaderSize)
	if err := hdr.Encode(msg); err != nil {
		return Response{}, &ProtocolError{Reason: err.Error()}
	}
	msg = append(msg, params...)
	msg = append(msg, data...)

	if err := t.conn.SetDeadline(t.deadline(ctx)); err != nil {
		t.closed = true
		return Response{}, &NetworkError{Op: "send-recv", Kind: NetClosed, Err: err}
	}

	if err := WriteFrame(t.conn, FrameSessionMessage, msg); err != nil {
		t.closed = true
		return Response{}, &NetworkError{Op: "send-recv", Kind: t.classifyIOErr(err), Err: err}
	}

	typ, payload, err := ReadFrame(t.conn)
	if err != nil {
		t.closed = true
		return Response{}, &NetworkError{Op: "send-recv", Kind: t.classifyIOErr(err), Err: err}
	}
	if typ != FrameSessionMessage {
		t.closed = true
		return Response{}, &ProtocolError{Reason: fmt.Sprintf("unexpected NBSS frame type 0x%02x in response", typ)}
	}

	var rhdr smb1.Header
	if err := rhdr.Decode(payload); err != nil {
		t.closed = true
		return Response{}, &ProtocolError{Reason: err.Error()}
	}

	if rhdr.MuxID != mid {
		// MID desynchronization is unrecoverable (spec §4.1, §9): close
		// rather than attempt to resynchronize.
		t.closed = true
		return Response{}, &ProtocolError{Reason: fmt.Sprintf("MID mismatch: sent %d, got %d", mid, rhdr.MuxID)}
	}

	body := payload[smb1.HeaderSize:]
	if len(body) < 1 {
		t.closed = true
		return Response{}, &ProtocolError{Reason: "response missing WordCount"}
	}
	wordCount := int(body[0])
	if len(body) < 1+wordCount*2 {
		t.closed = true
		return Response{}, &ProtocolError{Reason: "response WordCount exceeds payload"}
	}
	respParams := body[1 : 1+wordCount*2]
	respData := body[1+wordCount*2:]

	return Response{Header: rhdr, Params: respParams, Data: respData}, nil
}

// Close attempts a best-effort TREE_DISCONNECT + LOGOFF_ANDX before
// closing the socket (spec §4.1). Errors during the best-effort teardown
// are ignored; dropping the transport without calling Close is tolerated
// by the server and equivalent to an abrupt TCP close.
func (t *Transport) Close(ctx context.Context) error {
	if t.closed {
		return nil
	}

	if t.tid != 0 {
		_, _ = t.SendRecv(ctx, smb1.ComTreeDisconnect, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, []byte{0x00}, []byte{0x00, 0x00})
	}
	if t.uid != 0 {
		logoffParams := make([]byte, 1+4)
		logoffParams[0] = 0x02 // WordCount
		logoffParams[1] = 0xff // AndXCommand: SMB_COM_NO_ANDX_COMMAND
		_, _ = t.SendRecv(ctx, smb1.ComLogoffAndX, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, logoffParams, []byte{0x00, 0x00})
	}

	t.closed = true
	return t.conn.Close()
}

// IsClosed reports whether this transport has been marked unusable, either
// by an explicit Close or by a prior fatal I/O/protocol error.
func (t *Transport) IsClosed() bool { return t.closed }
