// Package ntlm builds the NTLMSSP NEGOTIATE (Type 1) message this client
// wraps in a SPNEGO NegTokenInit for SMB_COM_SESSION_SETUP_ANDX. The
// target server does not verify the blob's contents (spec §9) so this
// package never performs the challenge/response half of NTLM — it only
// emits a syntactically valid Type 1 message.
package ntlm

import "encoding/binary"

var signature = []byte("NTLMSSP\x00")

const (
	NtLmNegotiate = 0x00000001
)

// NEGOTIATE_MESSAGE flag bits; defaultFlags lists the ones this client
// advertises.
const (
	NegotiateUnicode               = 1 << 0
	NegotiateOEM                   = 1 << 1
	RequestTarget                  = 1 << 2
	NegotiateSign                  = 1 << 4
	NegotiateNTLM                  = 1 << 9
	NegotiateAlwaysSign            = 1 << 15
	NegotiateExtendedSessSecurity  = 1 << 19
	Negotiate128                   = 1 << 29
	Negotiate56                    = 1 << 31
)

const defaultFlags = NegotiateUnicode |
	RequestTarget |
	NegotiateSign |
	NegotiateNTLM |
	NegotiateAlwaysSign |
	NegotiateExtendedSessSecurity |
	Negotiate128 |
	Negotiate56

// NewNegotiateMessage builds a Type 1 NTLMSSP NEGOTIATE message.
// domain and workstation are OEM strings; either may be empty, in which
// case the corresponding *Supplied flag is omitted and the field gets
// zero length (its offset still points just past the preceding payload).
func NewNegotiateMessage(domain, workstation string) []byte {
	flags := uint32(defaultFlags)

	dom := []byte(domain)
	if len(dom) > 0 {
		flags |= 1 << 12 // NTLMSSP_NEGOTIATE_OEM_DOMAIN_SUPPLIED
	}
	wst := []byte(workstation)
	if len(wst) > 0 {
		flags |= 1 << 13 // NTLMSSP_NEGOTIATE_OEM_WORKSTATION_SUPPLIED
	}

	msg := make([]byte, 32, 32+len(dom)+len(wst))
	copy(msg[0:8], signature)
	binary.LittleEndian.PutUint32(msg[8:12], NtLmNegotiate)
	binary.LittleEndian.PutUint32(msg[12:16], flags)

	domOffset := uint32(32)
	binary.LittleEndian.PutUint16(msg[16:18], uint16(len(dom)))
	binary.LittleEndian.PutUint16(msg[18:20], uint16(len(dom)))
	binary.LittleEndian.PutUint32(msg[20:24], domOffset)

	wstOffset := domOffset + uint32(len(dom))
	binary.LittleEndian.PutUint16(msg[24:26], uint16(len(wst)))
	binary.LittleEndian.PutUint16(msg[26:28], uint16(len(wst)))
	binary.LittleEndian.PutUint32(msg[28:32], wstOffset)

	msg = append(msg, dom...)
	msg = append(msg, wst...)

	return msg
}
