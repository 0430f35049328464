package client

import (
	"encoding/binary"
	"testing"

	"github.com/anvilsmith/microsdc/smb1"
	"github.com/anvilsmith/microsdc/utils"
)

// buildFindEntry constructs one SMB_FIND_FILE_BOTH_DIRECTORY_INFO record.
// nextOffset is the byte offset from the start of this record to the
// following entry, or 0 for the last entry.
func buildFindEntry(nextOffset uint32, name string, size uint64, attrs uint32) []byte {
	return buildFindEntryWithMTime(nextOffset, name, size, attrs, 0)
}

func buildFindEntryWithMTime(nextOffset uint32, name string, size uint64, attrs uint32, mtime uint64) []byte {
	nameBytes := utils.EncodeNullTerminated(name)
	buf := make([]byte, findFileFixedLen+len(nameBytes))
	binary.LittleEndian.PutUint32(buf[0:4], nextOffset)
	binary.LittleEndian.PutUint64(buf[24:32], mtime)
	binary.LittleEndian.PutUint64(buf[40:48], size)
	binary.LittleEndian.PutUint32(buf[56:60], attrs)
	binary.LittleEndian.PutUint32(buf[60:64], uint32(len(nameBytes)))
	copy(buf[findFileFixedLen:], nameBytes)
	return buf
}

func TestDecodeFindEntriesSingle(t *testing.T) {
	buf := buildFindEntry(0, "readme.txt", 42, smb1.AttrArchive)

	entries, err := decodeFindEntries(buf)
	if err != nil {
		t.Fatalf("decodeFindEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Name != "readme.txt" || entries[0].Size != 42 || entries[0].IsDir {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestDecodeFindEntriesChain(t *testing.T) {
	first := buildFindEntry(0, "sub", 0, smb1.AttrDirectory)
	// NextEntryOffset is measured from the start of the entry it precedes,
	// so pad first up to a chosen boundary before appending second.
	padded := make([]byte, 128)
	copy(padded, first)
	binary.LittleEndian.PutUint32(padded[0:4], 128)
	second := buildFindEntry(0, "file.bin", 1024, 0)
	buf := append(padded, second...)

	entries, err := decodeFindEntries(buf)
	if err != nil {
		t.Fatalf("decodeFindEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "sub" || !entries[0].IsDir {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Name != "file.bin" || entries[1].Size != 1024 {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestDecodeFindEntriesTruncated(t *testing.T) {
	if _, err := decodeFindEntries(make([]byte, findFileFixedLen-1)); err == nil {
		t.Error("expected error for truncated entry")
	}
}

func TestDecodeFindEntriesBadNextOffset(t *testing.T) {
	buf := buildFindEntry(9999, "x", 0, 0)
	if _, err := decodeFindEntries(buf); err == nil {
		t.Error("expected error for out-of-range NextEntryOffset")
	}
}

func TestDecodeFindEntriesMTime(t *testing.T) {
	const filetime = 130000000000000000 // arbitrary FILETIME value
	buf := buildFindEntryWithMTime(0, "stamped.txt", 1, 0, filetime)

	entries, err := decodeFindEntries(buf)
	if err != nil {
		t.Fatalf("decodeFindEntries: %v", err)
	}
	if entries[0].MTime != filetime {
		t.Errorf("MTime = %d, want %d", entries[0].MTime, filetime)
	}
	if got := entries[0].ModTime(); got != utils.FiletimeToUnix(filetime) {
		t.Errorf("ModTime() = %v, want %v", got, utils.FiletimeToUnix(filetime))
	}
}

func TestFilterDots(t *testing.T) {
	in := []DirEntry{{Name: "."}, {Name: ".."}, {Name: "real.txt"}}
	out := filterDots(in)
	if len(out) != 1 || out[0].Name != "real.txt" {
		t.Errorf("filterDots = %+v, want [real.txt]", out)
	}
}
