package client

import (
	"testing"

	"github.com/anvilsmith/microsdc/smb1"
	"github.com/anvilsmith/microsdc/utils"
)

func TestBufferStringPadWhenOdd(t *testing.T) {
	b := bufferString(58, "\\dir") // 58+1 = 59, odd -> pad required
	if b[0] != smb1.BufferFormatASCII {
		t.Fatalf("first byte = 0x%02x, want BufferFormatASCII", b[0])
	}
	if b[1] != 0x00 {
		t.Fatalf("expected alignment pad byte at index 1, got 0x%02x", b[1])
	}
	name := utils.DecodeToString(b[2:])
	if name != "\\dir" {
		t.Errorf("decoded name = %q, want \\dir", name)
	}
}

func TestBufferStringPadSkippedWhenEven(t *testing.T) {
	b := bufferString(59, "\\dir") // 59+1 = 60, even -> no pad
	wantLen := 1 + len(utils.EncodeNullTerminated("\\dir"))
	if len(b) != wantLen {
		t.Fatalf("len(b) = %d, want %d (no pad byte)", len(b), wantLen)
	}
	name := utils.DecodeToString(b[1:])
	if name != "\\dir" {
		t.Errorf("decoded name = %q, want \\dir", name)
	}
}
