package spnego

import (
	"bytes"
	"encoding/asn1"
	"testing"
)

func TestEncodeNegTokenInit(t *testing.T) {
	token := []byte{0x4e, 0x54, 0x4c, 0x4d, 0x53, 0x53, 0x50, 0x00}

	bs, err := EncodeNegTokenInit([]asn1.ObjectIdentifier{NlmpOid}, token)
	if err != nil {
		t.Fatalf("EncodeNegTokenInit: %v", err)
	}
	if bs[0] != 0x60 {
		t.Errorf("first byte = 0x%02x, want application-tag 0x60", bs[0])
	}
	if !bytes.Contains(bs, token) {
		t.Error("encoded token does not contain the wrapped NTLMSSP message")
	}
}

func TestEncodeNegTokenInitEmptyTypes(t *testing.T) {
	bs, err := EncodeNegTokenInit(nil, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("EncodeNegTokenInit: %v", err)
	}
	if len(bs) == 0 {
		t.Error("expected non-empty output")
	}
}
