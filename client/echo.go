package client

import (
	"bytes"
	"context"

	"github.com/anvilsmith/microsdc/smb1"
)

// Echo round-trips a small payload through SMB_COM_ECHO, verifying the
// transport and session are still alive (spec §4.2 "Echo").
func (c *Client) Echo(ctx context.Context) error {
	if err := c.requireReady("echo"); err != nil {
		return err
	}

	payload := []byte("microsdc-echo")

	params := make([]byte, 1+2)
	params[0] = 1 // WordCount
	putLE16(params[1:3], 1) // EchoCount

	bc := make([]byte, 2)
	putLE16(bc, uint16(len(payload)))
	data := append(bc, payload...)

	resp, err := c.tr.SendRecv(ctx, smb1.ComEcho, 0, smb1.Flags2NTStatus, params, data)
	if err != nil {
		return c.fail(err)
	}
	if err := checkStatus(smb1.ComEcho, resp.Header.Status); err != nil {
		return err
	}
	if len(resp.Data) < 2 {
		return c.fail(&ProtocolError{Reason: "ECHO response missing data"})
	}
	echoed := resp.Data[2:]
	if !bytes.Equal(echoed, payload) {
		return c.fail(&ProtocolError{Reason: "ECHO response payload mismatch"})
	}
	return nil
}
