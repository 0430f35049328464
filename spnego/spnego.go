// Package spnego implements just enough of SPNEGO/GSS-API negotiation
// token encoding to wrap an NTLMSSP message for SMB1 SESSION_SETUP_ANDX.
package spnego

import (
	"encoding/asn1"
)

var (
	SpnegoOid = asn1.ObjectIdentifier([]int{1, 3, 6, 1, 5, 5, 2})
	NlmpOid   = asn1.ObjectIdentifier([]int{1, 3, 6, 1, 4, 1, 311, 2, 2, 10})
)

type initialContextToken struct { // `asn1:"application,tag:0"`
	ThisMech asn1.ObjectIdentifier `asn1:"optional"`
	Init     []NegTokenInit        `asn1:"optional,explict,tag:0"`
}

// initialContextToken ::= [APPLICATION 0] IMPLICIT SEQUENCE {
//   ThisMech          MechType
//   InnerContextToken negotiateToken
// }

// negotiateToken ::= CHOICE {
//   NegTokenInit [0] NegTokenInit
//   NegTokenResp [1] NegTokenResp
// }

type NegTokenInit struct {
	MechTypes   []asn1.ObjectIdentifier `asn1:"explicit,optional,tag:0"`
	ReqFlags    asn1.BitString          `asn1:"explicit,optional,tag:1"`
	MechToken   []byte                  `asn1:"explicit,optional,tag:2"`
	MechListMIC []byte                  `asn1:"explicit,optional,tag:3"`
}

func EncodeNegTokenInit(types []asn1.ObjectIdentifier, token []byte) ([]byte, error) {
	bs, err := asn1.Marshal(
		initialContextToken{
			ThisMech: SpnegoOid,
			Init: []NegTokenInit{
				{
					MechTypes: types,
					MechToken: token,
				},
			},
		})
	if err != nil {
		return nil, err
	}

	bs[0] = 0x60 // `asn1:"application,tag:0"`

	return bs, nil
}
