// Package client implements the SMB1/CIFS client that speaks to the
// target's microSD Management share: the connection handshake (§4.2) and
// the file-oriented verbs built on top of the transport layer.
package client

import (
	"context"
	"encoding/asn1"
	"math/rand"

	"github.com/anvilsmith/microsdc/internal/dbg"
	"github.com/anvilsmith/microsdc/ntlm"
	"github.com/anvilsmith/microsdc/smb1"
	"github.com/anvilsmith/microsdc/spnego"
	"github.com/anvilsmith/microsdc/transport"
	"github.com/anvilsmith/microsdc/utils"
)

// selfName is the NetBIOS "calling" name this client presents. Its
// contents are arbitrary since the target never validates it, but it
// must fit the 15-byte NetBIOS name budget.
const selfName = "MICROSDC"

// shareName is the fixed share this client always connects to.
const shareName = "microSD"

// treeService is the "service" field offered in TREE_CONNECT_ANDX,
// meaning "any" (spec §4.2).
const treeService = "?????"

// DebugLogger is an optional callback for protocol-level tracing. Left
// nil, the client logs nothing — logging is an external collaborator;
// this hook exists purely so a caller can wire in whatever logger it
// already uses.
type DebugLogger = dbg.Logger

// Client is a single SMB1 session against one target. It is not safe for
// concurrent use (spec §5): exactly one outstanding request at a time.
type Client struct {
	ip   string
	name string

	tr    *transport.Transport
	state State

	debug DebugLogger
}

// New constructs a Client for the target at ip with NetBIOS name name.
// It performs no I/O; call Connect to establish the session.
func New(ip, name string) *Client {
	return &Client{ip: ip, name: name, state: StateClosed}
}

// SetDebugLogger installs an optional trace callback.
func (c *Client) SetDebugLogger(f DebugLogger) { c.debug = f }

// State returns the client's current lifecycle state.
func (c *Client) State() State { return c.state }

// requireState returns a StateError if the client is not in want.
func (c *Client) requireState(op string, want State) error {
	if c.state != want {
		return &StateError{Op: op, State: c.state}
	}
	return nil
}

// requireReady is the common precondition for file verbs.
func (c *Client) requireReady(op string) error {
	if c.state != StateReady {
		return &StateError{Op: op, State: c.state}
	}
	return nil
}

// fail transitions the client to CLOSED on any Network or Protocol error,
// per spec §7 ("Any Network or Protocol error on an established Client
// transitions it to CLOSED"), and returns err unchanged for convenience.
func (c *Client) fail(err error) error {
	switch err.(type) {
	case *transport.NetworkError, *transport.ProtocolError, *ProtocolError:
		c.state = StateClosed
	}
	return err
}

// checkStatus turns a non-OK NT status into an SmbError.
func checkStatus(command uint8, status uint32) error {
	if status == smb1.StatusOK {
		return nil
	}
	return &SmbError{Command: command, Status: status, Name: smb1.StatusName(status)}
}

// Connect drives the full handshake (§4.2): NBSS SESSION_REQUEST,
// NEGOTIATE, SESSION_SETUP_ANDX, TREE_CONNECT_ANDX.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.requireState("connect", StateClosed); err != nil {
		return err
	}

	pid := uint16(rand.Intn(1 << 16))
	tr, err := transport.Dial(ctx, c.ip, pid)
	if err != nil {
		return err
	}
	c.tr = tr
	c.state = StateTCPOpen
	c.debug.Log("connect: TCP open to %s:139", c.ip)

	if err := tr.SessionRequest(ctx, c.name, selfName); err != nil {
		c.state = StateClosed
		return err
	}
	c.state = StateNBSSReady
	c.debug.Log("connect: NBSS session established with %q", c.name)

	if err := c.negotiate(ctx); err != nil {
		return c.fail(err)
	}
	c.state = StateNegotiated
	c.debug.Log("connect: negotiated dialect, max buffer size %d", tr.MaxBufferSize())

	if err := c.sessionSetup(ctx); err != nil {
		return c.fail(err)
	}
	c.state = StateAuthed
	c.debug.Log("connect: session set up, UID=%d", tr.UID())

	if err := c.treeConnect(ctx); err != nil {
		return c.fail(err)
	}
	c.state = StateReady
	c.debug.Log("connect: tree connected, TID=%d", tr.TID())

	return nil
}

func (c *Client) negotiate(ctx context.Context) error {
	params, data := smb1.EncodeNegotiateRequest(smb1.DialectNTLM012)
	resp, err := c.tr.SendRecv(ctx, smb1.ComNegotiate, 0, smb1.Flags2NTStatus, params, data)
	if err != nil {
		return err
	}
	if err := checkStatus(smb1.ComNegotiate, resp.Header.Status); err != nil {
		return err
	}

	nr, err := smb1.DecodeNegotiateResponse(resp.Params, resp.Data)
	if err != nil {
		return &ProtocolError{Reason: err.Error()}
	}
	if nr.DialectIndex != 0 {
		return &ProtocolError{Reason: "server selected an unexpected dialect index"}
	}

	c.tr.SetMaxBufferSize(nr.MaxBufferSize)
	return nil
}

func (c *Client) sessionSetup(ctx context.Context) error {
	ntlmMsg := ntlm.NewNegotiateMessage("", selfName)
	blob, err := spnego.EncodeNegTokenInit([]asn1.ObjectIdentifier{spnego.NlmpOid}, ntlmMsg)
	if err != nil {
		return &ProtocolError{Reason: "encoding SPNEGO blob: " + err.Error()}
	}

	const wordCount = 12
	params := make([]byte, 1+2*wordCount)
	params[0] = wordCount
	params[1] = 0xff // AndXCommand: no further command
	// params[2:5] AndXReserved/offset left zero
	// MaxBufferSize: advertise the same ceiling we can chunk to.
	putLE16(params[5:7], 0xffff)
	putLE16(params[7:9], 1)  // MaxMpxCount
	putLE16(params[9:11], 1) // VcNumber
	// SessionKey left zero
	putLE16(params[15:17], uint16(len(blob)))
	// Reserved left zero
	putLE32(params[21:25], uint32(smb1.CapUnicode|smb1.CapNTSMBs|smb1.CapStatus32))

	dataStart := smb1.HeaderSize + 1 + 2*wordCount + 2
	body := append([]byte{}, blob...)
	body = append(body, utils.AlignPad(dataStart+len(body))...)
	body = append(body, utils.EncodeNullTerminated("microsdc")...) // NativeOS
	body = append(body, utils.EncodeNullTerminated("microsdc")...) // NativeLanMan

	bc := make([]byte, 2)
	putLE16(bc, uint16(len(body)))
	data := append(bc, body...)

	resp, err := c.tr.SendRecv(ctx, smb1.ComSessionSetupAndX, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, params, data)
	if err != nil {
		return err
	}
	if err := checkStatus(smb1.ComSessionSetupAndX, resp.Header.Status); err != nil {
		return err
	}

	c.tr.SetUID(resp.Header.UserID)
	return nil
}

func (c *Client) treeConnect(ctx context.Context) error {
	const wordCount = 4
	params := make([]byte, 1+2*wordCount)
	params[0] = wordCount
	params[1] = 0xff // AndXCommand
	// Flags left zero: no extended response requested.
	putLE16(params[7:9], 1) // PasswordLength: single NUL byte "password"

	path := "\\\\" + c.name + "\\" + shareName

	body := []byte{0x00} // Password
	dataStart := smb1.HeaderSize + 1 + 2*wordCount + 2
	body = append(body, utils.AlignPad(dataStart+len(body))...)
	body = append(body, utils.EncodeNullTerminated(path)...)
	body = append(body, treeService...)
	body = append(body, 0x00)

	bc := make([]byte, 2)
	putLE16(bc, uint16(len(body)))
	data := append(bc, body...)

	resp, err := c.tr.SendRecv(ctx, smb1.ComTreeConnectAndX, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, params, data)
	if err != nil {
		return err
	}
	if err := checkStatus(smb1.ComTreeConnectAndX, resp.Header.Status); err != nil {
		return err
	}

	c.tr.SetTID(resp.Header.TreeID)
	return nil
}

// Close tears down the connection (best-effort TREE_DISCONNECT +
// LOGOFF_ANDX, then closes the socket).
func (c *Client) Close(ctx context.Context) error {
	if c.tr == nil || c.state == StateClosed {
		c.state = StateClosed
		return nil
	}
	err := c.tr.Close(ctx)
	c.state = StateClosed
	return err
}
