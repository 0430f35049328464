package discovery

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const nsWSD = "http://schemas.xmlsoap.org/ws/2005/04/discovery"
const nsWSA = "http://schemas.xmlsoap.org/ws/2004/08/addressing"

type probeEnvelope struct {
	XMLName xml.Name `xml:"http://www.w3.org/2003/05/soap-envelope Envelope"`
	Header  probeHeader
	Body    probeBody
}

type probeHeader struct {
	To        string `xml:"http://schemas.xmlsoap.org/ws/2004/08/addressing To"`
	Action    string `xml:"http://schemas.xmlsoap.org/ws/2004/08/addressing Action"`
	MessageID string `xml:"http://schemas.xmlsoap.org/ws/2004/08/addressing MessageID"`
}

type probeBody struct {
	Probe struct{} `xml:"http://schemas.xmlsoap.org/ws/2005/04/discovery Probe"`
}

type getEnvelope struct {
	XMLName xml.Name `xml:"http://www.w3.org/2003/05/soap-envelope Envelope"`
	Header  probeHeader
	Body    struct{} `xml:"http://www.w3.org/2003/05/soap-envelope Body"`
}

// encodeGetEnvelope builds the SOAP-over-HTTP WS-Transfer Get request sent
// to a DPWS responder's XAddr to fetch its metadata. The body is empty;
// WS-Transfer Get carries nothing but addressing headers.
func encodeGetEnvelope(to, messageID string) []byte {
	env := getEnvelope{}
	env.Header.To = to
	env.Header.Action = metadataAction
	env.Header.MessageID = messageID

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(env); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// encodeProbeEnvelope builds the SOAP-over-UDP WS-Discovery Probe message.
func encodeProbeEnvelope(messageID string) []byte {
	env := probeEnvelope{}
	env.Header.To = "urn:schemas-xmlsoap-org:ws:2005:04:discovery"
	env.Header.Action = probeAction
	env.Header.MessageID = messageID

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(env); err != nil {
		// A hand-built literal struct always marshals; this would only
		// fail on programmer error.
		panic(err)
	}
	return buf.Bytes()
}

// parseProbeMatch scans a ProbeMatch response for its XAddrs, tolerating
// any namespace prefix the responder chooses by matching on local name
// and namespace URI via the token stream rather than a fixed struct. It
// rejects any response whose RelatesTo does not echo wantRelatesTo, to
// keep stray cross-talk on the multicast group from being accepted as an
// answer to a Probe this process never sent.
func parseProbeMatch(body []byte, wantRelatesTo string) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	var xaddrs []string
	var relatesTo string
	var inXAddrs, inRelatesTo bool
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == nsWSD && t.Name.Local == "XAddrs" {
				inXAddrs = true
				text.Reset()
			}
			if t.Name.Space == nsWSA && t.Name.Local == "RelatesTo" {
				inRelatesTo = true
				text.Reset()
			}
		case xml.CharData:
			if inXAddrs || inRelatesTo {
				text.Write(t)
			}
		case xml.EndElement:
			if inXAddrs && t.Name.Space == nsWSD && t.Name.Local == "XAddrs" {
				inXAddrs = false
				for _, addr := range strings.Fields(text.String()) {
					xaddrs = append(xaddrs, addr)
				}
			}
			if inRelatesTo && t.Name.Space == nsWSA && t.Name.Local == "RelatesTo" {
				inRelatesTo = false
				relatesTo = strings.TrimSpace(text.String())
			}
		}
	}

	if wantRelatesTo != "" && relatesTo != wantRelatesTo {
		return nil, fmt.Errorf("discovery: RelatesTo %q does not match sent MessageID %q", relatesTo, wantRelatesTo)
	}

	if len(xaddrs) == 0 {
		return nil, fmt.Errorf("discovery: no XAddrs in ProbeMatch")
	}
	return xaddrs, nil
}

// extractFriendlyName scans a DPWS GetMetadata response for the device's
// FriendlyName, matching by local name only since DPWS metadata varies
// in which namespace prefix it binds to the device-metadata dialect.
func extractFriendlyName(body []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	var inName bool
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "FriendlyName" {
				inName = true
				text.Reset()
			}
		case xml.CharData:
			if inName {
				text.Write(t)
			}
		case xml.EndElement:
			if inName && t.Name.Local == "FriendlyName" {
				name := strings.TrimSpace(text.String())
				if name != "" {
					return normalizeFriendlyName(name), nil
				}
				inName = false
			}
		}
	}

	return "", fmt.Errorf("discovery: no FriendlyName in metadata")
}

// normalizeFriendlyName strips a vendor prefix such as "VENDOR: Name" or
// "vendor/Name" from a DPWS FriendlyName and upper-cases the remainder to
// recover the console's NetBIOS name.
func normalizeFriendlyName(raw string) string {
	name := raw
	if i := strings.LastIndexAny(name, ":/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToUpper(strings.TrimSpace(name))
}
