package smb1

import "errors"

// Standardized protocol errors, independent of any particular request.
var (
	ErrWrongStructureLength = errors.New("wrong structure length")
	ErrWrongProtocol        = errors.New("unsupported protocol")
	ErrWrongParameters      = errors.New("wrong parameter list")
	ErrWrongDataLength      = errors.New("data field has a wrong length")
	ErrWrongArgument        = errors.New("wrong data field")
)

// ProtocolID is the four-byte SMB1 signature "\xFFSMB" read little-endian.
const ProtocolID = 0x424d53ff

// DialectNTLM012 is the single dialect string this client offers.
const DialectNTLM012 = "NT LM 0.12"

// Command codes used by this client.
const (
	ComCreateDirectory     = 0x00
	ComDeleteDirectory     = 0x01
	ComClose               = 0x04
	ComDelete              = 0x06
	ComRename              = 0x07
	ComEcho                = 0x2b
	ComReadAndX            = 0x2e
	ComWriteAndX           = 0x2f
	ComTransaction2        = 0x32
	ComTreeConnect         = 0x70
	ComTreeDisconnect      = 0x71
	ComNegotiate           = 0x72
	ComSessionSetupAndX    = 0x73
	ComLogoffAndX          = 0x74
	ComTreeConnectAndX     = 0x75
	ComNTTransact          = 0xa0
	ComNTCreateAndX        = 0xa2
)

// TRANS2 subcommands.
const (
	Trans2FindFirst2           = 0x0001
	Trans2FindNext2            = 0x0002
	Trans2QueryFSInformation   = 0x0003
	Trans2QueryPathInformation = 0x0005
	Trans2QueryFileInformation = 0x0007
)

// FIND_FIRST2/FIND_NEXT2 information levels and flags.
const (
	FindFileBothDirectoryInfo = 0x0104

	FindCloseAfterRequest = 0x0001
	FindCloseAtEOS        = 0x0002
	FindReturnResumeKeys  = 0x0004
	FindContinueFromLast  = 0x0008
)

// QUERY_FS_INFORMATION levels.
const (
	QueryFSSizeInfo = 0x0103
)

// QUERY_PATH_INFORMATION / QUERY_FILE_INFORMATION levels this client uses.
const (
	QueryFileStandardInfo = 0x0102
)

// NT status codes this client distinguishes explicitly; see StatusName.
const (
	StatusOK                  = 0x00000000
	StatusUnsuccessful        = 0xc0000001
	StatusNotImplemented      = 0xc0000002
	StatusInvalidParameter    = 0xc000000d
	StatusAccessDenied        = 0xc0000022
	StatusObjectNameInvalid   = 0xc0000033
	StatusObjectNameNotFound  = 0xc0000034
	StatusObjectNameCollision = 0xc0000035
	StatusObjectPathNotFound  = 0xc000003a
	StatusNotADirectory       = 0xc0000103
	StatusDiskFull            = 0xc000007f
	StatusNotSupported        = 0xc00000bb
	StatusInvalidSMB          = 0x00010002
)

var statusNames = map[uint32]string{
	StatusOK:                  "STATUS_OK",
	StatusUnsuccessful:        "STATUS_UNSUCCESSFUL",
	StatusNotImplemented:      "STATUS_NOT_IMPLEMENTED",
	StatusInvalidParameter:    "STATUS_INVALID_PARAMETER",
	StatusAccessDenied:        "STATUS_ACCESS_DENIED",
	StatusObjectNameInvalid:   "STATUS_OBJECT_NAME_INVALID",
	StatusObjectNameNotFound:  "STATUS_OBJECT_NAME_NOT_FOUND",
	StatusObjectNameCollision: "STATUS_OBJECT_NAME_COLLISION",
	StatusObjectPathNotFound:  "STATUS_OBJECT_PATH_NOT_FOUND",
	StatusNotADirectory:       "STATUS_NOT_A_DIRECTORY",
	StatusDiskFull:            "STATUS_DISK_FULL",
	StatusNotSupported:        "STATUS_NOT_SUPPORTED",
	StatusInvalidSMB:          "STATUS_INVALID_SMB",
}

// StatusName maps an NT status code to its symbolic name, falling back to
// "STATUS_UNKNOWN" for codes this client does not name explicitly.
func StatusName(status uint32) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "STATUS_UNKNOWN"
}

// Security modes offered at NEGOTIATE / returned by the server.
const (
	NegotiateUserSecurity               = 0x01
	NegotiateEncryptPasswords           = 0x02
	NegotiateSecuritySignaturesEnabled  = 0x04
	NegotiateSecuritySignaturesRequired = 0x08
)

// Server capability bits relevant to this client.
const (
	CapRawMode     = 0x00000001
	CapUnicode     = 0x00000004
	CapLargeFiles  = 0x00000008
	CapNTSMBs      = 0x00000010
	CapStatus32    = 0x00000040
	CapNTFind      = 0x00000200
	CapLargeReadX  = 0x00004000
)

// Header flags.
const (
	FlagsCaseInsensitive    = 0x08
	FlagsCanonicalizedPaths = 0x10
	FlagsReply              = 0x80
)

// Header flags2.
const (
	Flags2LongNames   = 0x0001
	Flags2IsLongName  = 0x0040
	Flags2NTStatus    = 0x4000
	Flags2Unicode     = 0x8000
)

// NT_CREATE_ANDX DesiredAccess bits this client uses.
const (
	AccessReadData        = 0x00000001
	AccessWriteData       = 0x00000002
	AccessAppendData      = 0x00000004
	AccessReadAttributes  = 0x00000080
	AccessWriteAttributes = 0x00000100
	AccessDelete          = 0x00010000
	AccessReadControl     = 0x00020000
	AccessSynchronize     = 0x00100000

	AccessGenericRead    = 0x80000000
	AccessGenericWrite   = 0x40000000
	AccessGenericExecute = 0x20000000
)

// NT_CREATE_ANDX ShareAccess bits.
const (
	ShareRead   = 0x00000001
	ShareWrite  = 0x00000002
	ShareDelete = 0x00000004
)

// NT_CREATE_ANDX CreateDisposition values.
const (
	DispositionSupersede   = 0x00000000
	DispositionOpen        = 0x00000001
	DispositionCreate      = 0x00000002
	DispositionOpenIf      = 0x00000003
	DispositionOverwrite   = 0x00000004
	DispositionOverwriteIf = 0x00000005
)

// NT_CREATE_ANDX CreateOptions bits.
const (
	CreateOptionDirectoryFile    = 0x00000001
	CreateOptionNonDirectoryFile = 0x00000040
)

// NT_CREATE_ANDX file attribute bits (also used to decode directory entries).
const (
	AttrReadOnly = 0x0001
	AttrHidden   = 0x0002
	AttrSystem   = 0x0004
	AttrDirectory = 0x0010
	AttrArchive  = 0x0020
	AttrNormal   = 0x0080
)

// Search attributes for RENAME/delete-by-pattern requests: hidden+system
// ensures any file is reachable (spec §4.2).
const SearchAttrHiddenSystemDirectory = AttrHidden | AttrSystem | AttrDirectory

// BufferFormat markers used preceding strings in certain SMB1 data blocks.
const (
	BufferFormatASCII = 0x04
	BufferFormatVariable = 0x05
)
