package client

import (
	"testing"

	"github.com/anvilsmith/microsdc/smb1"
)

func TestAccessMasksRead(t *testing.T) {
	p := accessMasks(AccessRead, false)
	if p.disposition != smb1.DispositionOpen {
		t.Errorf("disposition = 0x%x, want DispositionOpen", p.disposition)
	}
	if p.desiredAccess&smb1.AccessWriteData != 0 {
		t.Error("AccessRead must not request write access")
	}
	if p.createOptions != smb1.CreateOptionNonDirectoryFile {
		t.Errorf("createOptions = 0x%x, want CreateOptionNonDirectoryFile", p.createOptions)
	}
}

func TestAccessMasksWrite(t *testing.T) {
	p := accessMasks(AccessWrite, false)
	if p.disposition != smb1.DispositionOverwriteIf {
		t.Errorf("disposition = 0x%x, want DispositionOverwriteIf", p.disposition)
	}
	if p.desiredAccess&smb1.AccessWriteData == 0 {
		t.Error("AccessWrite must request write access")
	}
}

func TestAccessMasksReadWrite(t *testing.T) {
	p := accessMasks(AccessReadWrite, false)
	if p.disposition != smb1.DispositionOpenIf {
		t.Errorf("disposition = 0x%x, want DispositionOpenIf", p.disposition)
	}
	if p.desiredAccess&smb1.AccessReadData == 0 || p.desiredAccess&smb1.AccessWriteData == 0 {
		t.Error("AccessReadWrite must request both read and write access")
	}
}

func TestAccessMasksDirectory(t *testing.T) {
	p := accessMasks(AccessRead, true)
	if p.createOptions != smb1.CreateOptionDirectoryFile {
		t.Errorf("createOptions = 0x%x, want CreateOptionDirectoryFile", p.createOptions)
	}
}

func TestAccessMasksShareAccessAlwaysOpen(t *testing.T) {
	for _, a := range []Access{AccessRead, AccessWrite, AccessReadWrite} {
		p := accessMasks(a, false)
		want := uint32(smb1.ShareRead | smb1.ShareWrite | smb1.ShareDelete)
		if p.shareAccess != want {
			t.Errorf("access %d: shareAccess = 0x%x, want 0x%x", a, p.shareAccess, want)
		}
	}
}
