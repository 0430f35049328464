package client

import "github.com/anvilsmith/microsdc/smb1"

// Access is the caller-facing intent for Open (spec §4.2), translated
// into NT_CREATE_ANDX DesiredAccess/ShareAccess/CreateDisposition bits.
type Access int

const (
	// AccessRead opens an existing file for reading only.
	AccessRead Access = iota
	// AccessWrite opens or creates a file for writing, truncating any
	// existing contents.
	AccessWrite
	// AccessReadWrite opens a file for both reading and writing without
	// truncation, creating it if it does not exist.
	AccessReadWrite
)

// createParams is the NT_CREATE_ANDX request shape derived from an
// Access value plus whether the target is a directory.
type createParams struct {
	desiredAccess uint32
	shareAccess   uint32
	disposition   uint32
	createOptions uint32
}

// accessMasks maps a caller's Access intent to the NT_CREATE_ANDX bits
// this client sends, matching the narrow subset of semantics the target
// actually needs (no ranges, no byte-range locks, no oplocks).
func accessMasks(access Access, dir bool) createParams {
	var p createParams

	p.shareAccess = smb1.ShareRead | smb1.ShareWrite | smb1.ShareDelete

	if dir {
		p.createOptions = smb1.CreateOptionDirectoryFile
	} else {
		p.createOptions = smb1.CreateOptionNonDirectoryFile
	}

	switch access {
	case AccessRead:
		p.desiredAccess = smb1.AccessReadData | smb1.AccessReadAttributes | smb1.AccessSynchronize
		p.disposition = smb1.DispositionOpen
	case AccessWrite:
		p.desiredAccess = smb1.AccessWriteData | smb1.AccessReadAttributes | smb1.AccessWriteAttributes | smb1.AccessSynchronize
		p.disposition = smb1.DispositionOverwriteIf
	case AccessReadWrite:
		p.desiredAccess = smb1.AccessReadData | smb1.AccessWriteData | smb1.AccessReadAttributes | smb1.AccessWriteAttributes | smb1.AccessSynchronize
		p.disposition = smb1.DispositionOpenIf
	}

	return p
}
