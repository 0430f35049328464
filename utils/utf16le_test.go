package utils

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []string{"", "microSD", "\\\\HOST\\share", "café"}
	for _, s := range cases {
		enc := EncodeStringToBytes(s)
		got := DecodeToString(enc)
		if got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestEncodedStringLen(t *testing.T) {
	if n := EncodedStringLen("abc"); n != 6 {
		t.Errorf("EncodedStringLen(abc) = %d, want 6", n)
	}
	if n := EncodedStringLen(""); n != 0 {
		t.Errorf("EncodedStringLen(\"\") = %d, want 0", n)
	}
}

func TestEncodeNullTerminated(t *testing.T) {
	b := EncodeNullTerminated("ab")
	want := []byte{'a', 0, 'b', 0, 0, 0}
	if !bytes.Equal(b, want) {
		t.Errorf("EncodeNullTerminated(ab) = %v, want %v", b, want)
	}
}

func TestDecodeNullTerminated(t *testing.T) {
	b := append(EncodeStringToBytes("name"), 0, 0, 'x', 0)
	got := DecodeNullTerminated(b)
	if got != "name" {
		t.Errorf("DecodeNullTerminated = %q, want %q", got, "name")
	}
}

func TestEncodeString(t *testing.T) {
	dst := make([]byte, EncodedStringLen("hi"))
	n := EncodeString(dst, "hi")
	if n != 4 {
		t.Fatalf("EncodeString returned %d, want 4", n)
	}
	if DecodeToString(dst) != "hi" {
		t.Errorf("decoded %q, want hi", DecodeToString(dst))
	}
}
