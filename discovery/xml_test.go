package discovery

import (
	"strings"
	"testing"
)

func TestEncodeProbeEnvelope(t *testing.T) {
	body := encodeProbeEnvelope("urn:uuid:test-message-id")

	s := string(body)
	if !strings.Contains(s, "test-message-id") {
		t.Errorf("envelope missing MessageID: %s", s)
	}
	if !strings.Contains(s, probeAction) {
		t.Errorf("envelope missing Probe action: %s", s)
	}
}

const sampleProbeMatchBody = `<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"
               xmlns:wsa="http://schemas.xmlsoap.org/ws/2004/08/addressing"
               xmlns:wsd="http://schemas.xmlsoap.org/ws/2005/04/discovery">
  <soap:Header>
    <wsa:Action>http://schemas.xmlsoap.org/ws/2005/04/discovery/ProbeMatches</wsa:Action>
    <wsa:RelatesTo>urn:uuid:sent-message-id</wsa:RelatesTo>
  </soap:Header>
  <soap:Body>
    <wsd:ProbeMatches>
      <wsd:ProbeMatch>
        <wsa:EndpointReference>
          <wsa:Address>urn:uuid:abc-123</wsa:Address>
        </wsa:EndpointReference>
        <wsd:XAddrs>http://192.168.1.50:5357/MicroSDManagement http://192.168.1.50:5358/alt</wsd:XAddrs>
      </wsd:ProbeMatch>
    </wsd:ProbeMatches>
  </soap:Body>
</soap:Envelope>`

func TestParseProbeMatch(t *testing.T) {
	xaddrs, err := parseProbeMatch([]byte(sampleProbeMatchBody), "urn:uuid:sent-message-id")
	if err != nil {
		t.Fatalf("parseProbeMatch: %v", err)
	}
	if len(xaddrs) != 2 {
		t.Fatalf("got %d XAddrs, want 2: %v", len(xaddrs), xaddrs)
	}
	if xaddrs[0] != "http://192.168.1.50:5357/MicroSDManagement" {
		t.Errorf("xaddrs[0] = %q", xaddrs[0])
	}
}

func TestParseProbeMatchNoXAddrs(t *testing.T) {
	if _, err := parseProbeMatch([]byte(`<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"></soap:Envelope>`), ""); err == nil {
		t.Error("expected error when no XAddrs present")
	}
}

func TestParseProbeMatchRelatesToMismatch(t *testing.T) {
	if _, err := parseProbeMatch([]byte(sampleProbeMatchBody), "urn:uuid:some-other-message-id"); err == nil {
		t.Error("expected error when RelatesTo does not match the sent MessageID")
	}
}

func TestParseProbeMatchIgnoresRelatesToWhenNotWanted(t *testing.T) {
	xaddrs, err := parseProbeMatch([]byte(sampleProbeMatchBody), "")
	if err != nil {
		t.Fatalf("parseProbeMatch: %v", err)
	}
	if len(xaddrs) != 2 {
		t.Fatalf("got %d XAddrs, want 2: %v", len(xaddrs), xaddrs)
	}
}

const sampleMetadataBody = `<?xml version="1.0"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope">
  <s:Body>
    <mex:Metadata xmlns:mex="http://schemas.xmlsoap.org/ws/2004/09/mex">
      <mex:MetadataSection>
        <d:Relationship xmlns:d="http://schemas.xmlsoap.org/ws/2006/02/devprof">
          <d:Host>
            <pnp:FriendlyName xmlns:pnp="http://schemas.xmlsoap.org/ws/2006/02/devprof">
              <pnp:English>Vendor: Handheld Console</pnp:English>
            </pnp:FriendlyName>
          </d:Host>
        </d:Relationship>
      </mex:MetadataSection>
    </mex:Metadata>
  </s:Body>
</s:Envelope>`

func TestExtractFriendlyName(t *testing.T) {
	name, err := extractFriendlyName([]byte(sampleMetadataBody))
	if err != nil {
		t.Fatalf("extractFriendlyName: %v", err)
	}
	if name != "HANDHELD CONSOLE" {
		t.Errorf("name = %q, want %q", name, "HANDHELD CONSOLE")
	}
}

func TestExtractFriendlyNameMissing(t *testing.T) {
	if _, err := extractFriendlyName([]byte(`<a></a>`)); err == nil {
		t.Error("expected error when FriendlyName is absent")
	}
}

func TestNormalizeFriendlyName(t *testing.T) {
	cases := map[string]string{
		"Vendor: Handheld Console": "HANDHELD CONSOLE",
		"vendor/Handheld Console":  "HANDHELD CONSOLE",
		"Handheld Console":         "HANDHELD CONSOLE",
	}
	for in, want := range cases {
		if got := normalizeFriendlyName(in); got != want {
			t.Errorf("normalizeFriendlyName(%q) = %q, want %q", in, got, want)
		}
	}
}
