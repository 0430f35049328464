package client

import "testing"

func TestPutLE16(t *testing.T) {
	b := make([]byte, 2)
	putLE16(b, 0x1234)
	if b[0] != 0x34 || b[1] != 0x12 {
		t.Errorf("putLE16 = %v, want [0x34 0x12]", b)
	}
}

func TestPutLE32(t *testing.T) {
	b := make([]byte, 4)
	putLE32(b, 0x89abcdef)
	if b[0] != 0xef || b[1] != 0xcd || b[2] != 0xab || b[3] != 0x89 {
		t.Errorf("putLE32 = %v, want [0xef 0xcd 0xab 0x89]", b)
	}
}
