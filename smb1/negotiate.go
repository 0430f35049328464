package smb1

import (
	"encoding/binary"

	"github.com/anvilsmith/microsdc/utils"
)

// EncodeNegotiateRequest builds the WordCount+Params+ByteCount+Data blocks
// (everything after the 32-byte header) for SMB_COM_NEGOTIATE, offering a
// single dialect string.
func EncodeNegotiateRequest(dialect string) (params, data []byte) {
	// WordCount is 0 for NEGOTIATE.
	params = []byte{0x00}

	// Each dialect is a BufferFormat(0x02) byte followed by a
	// NUL-terminated ASCII string.
	buf := make([]byte, 0, len(dialect)+2)
	buf = append(buf, 0x02)
	buf = append(buf, dialect...)
	buf = append(buf, 0x00)

	bc := make([]byte, 2)
	binary.LittleEndian.PutUint16(bc, uint16(len(buf)))
	data = append(bc, buf...)
	return params, data
}

// NegotiateResponse is the client's decoded view of the NEGOTIATE reply.
type NegotiateResponse struct {
	DialectIndex  uint16
	SecurityMode  uint8
	MaxMpxCount   uint16
	MaxNumberVCs  uint16
	MaxBufferSize uint32
	MaxRawSize    uint32
	SessionKey    uint32
	Capabilities  uint32
	Challenge     []byte
	DomainName    string
}

// DecodeNegotiateResponse parses the params+data blocks of a NEGOTIATE
// response (the caller has already split header/params/data via the
// transport layer and verified NT status OK).
func DecodeNegotiateResponse(params, data []byte) (NegotiateResponse, error) {
	var nr NegotiateResponse

	if len(params) < 2 {
		return nr, ErrWrongParameters
	}
	nr.DialectIndex = binary.LittleEndian.Uint16(params[:2])

	if nr.DialectIndex == 0xffff {
		return nr, ErrWrongArgument
	}

	// Extended (NT LM 0.12) NEGOTIATE response parameter block is 34 bytes
	// (17 words), of which 32 follow the 2-byte DialectIndex.
	if len(params) < 2+32 {
		return nr, ErrWrongParameters
	}
	p := params[2:]

	nr.SecurityMode = p[0]
	nr.MaxMpxCount = binary.LittleEndian.Uint16(p[1:3])
	nr.MaxNumberVCs = binary.LittleEndian.Uint16(p[3:5])
	nr.MaxBufferSize = binary.LittleEndian.Uint32(p[5:9])
	nr.MaxRawSize = binary.LittleEndian.Uint32(p[9:13])
	nr.SessionKey = binary.LittleEndian.Uint32(p[13:17])
	nr.Capabilities = binary.LittleEndian.Uint32(p[17:21])
	// p[21:29] SystemTime, p[29:31] ServerTimeZone: not needed by this client.

	challengeLen := int(p[31])

	if len(data) < 2 {
		return nr, ErrWrongDataLength
	}
	byteCount := int(binary.LittleEndian.Uint16(data[:2]))
	body := data[2:]
	if len(body) < byteCount {
		return nr, ErrWrongDataLength
	}
	body = body[:byteCount]

	if challengeLen > 0 {
		if len(body) < challengeLen {
			return nr, ErrWrongDataLength
		}
		nr.Challenge = append([]byte(nil), body[:challengeLen]...)
		body = body[challengeLen:]
	}

	nr.DomainName = utils.DecodeNullTerminated(body)

	return nr, nil
}
