package utils

// Roundup returns x rounded up to the nearest multiple of align, where
// align is a power of two.
func Roundup(x, align int) int {
	return (x + (align - 1)) &^ (align - 1)
}

// AlignPad returns a single zero byte if offset is odd, nil otherwise.
// SMB1 requires UTF-16LE payloads to begin on an even byte offset from
// the start of the message; several commands (DELETE, RENAME,
// TREE_CONNECT_ANDX) place a single-byte BufferFormat marker immediately
// before a Unicode string, which needs exactly this pad inserted.
func AlignPad(offset int) []byte {
	if offset%2 != 0 {
		return []byte{0x00}
	}
	return nil
}
