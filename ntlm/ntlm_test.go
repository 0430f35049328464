package ntlm

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestNewNegotiateMessageHeader(t *testing.T) {
	msg := NewNegotiateMessage("", "")

	if !bytes.Equal(msg[0:8], signature) {
		t.Errorf("signature = %q, want %q", msg[0:8], signature)
	}
	if got := binary.LittleEndian.Uint32(msg[8:12]); got != NtLmNegotiate {
		t.Errorf("message type = 0x%x, want 0x%x", got, NtLmNegotiate)
	}
	if len(msg) != 32 {
		t.Errorf("message length = %d, want 32 with no domain/workstation", len(msg))
	}
}

func TestNewNegotiateMessageWithDomainAndWorkstation(t *testing.T) {
	msg := NewNegotiateMessage("WORKGROUP", "MICROSDC")

	flags := binary.LittleEndian.Uint32(msg[12:16])
	if flags&(1<<12) == 0 {
		t.Error("expected OEM_DOMAIN_SUPPLIED flag set")
	}
	if flags&(1<<13) == 0 {
		t.Error("expected OEM_WORKSTATION_SUPPLIED flag set")
	}

	domLen := binary.LittleEndian.Uint16(msg[16:18])
	domOff := binary.LittleEndian.Uint32(msg[20:24])
	dom := string(msg[domOff : domOff+uint32(domLen)])
	if dom != "WORKGROUP" {
		t.Errorf("domain = %q, want WORKGROUP", dom)
	}

	wstLen := binary.LittleEndian.Uint16(msg[24:26])
	wstOff := binary.LittleEndian.Uint32(msg[28:32])
	wst := string(msg[wstOff : wstOff+uint32(wstLen)])
	if wst != "MICROSDC" {
		t.Errorf("workstation = %q, want MICROSDC", wst)
	}
}
