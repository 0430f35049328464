package transport

import "fmt"

// netbiosFileServiceSuffix is the 16th byte of an encoded NetBIOS name,
// identifying the file/workstation service.
const netbiosFileServiceSuffix = 0x20

// EncodeNetBIOSName first-level-encodes name for use in a SESSION_REQUEST
// called/calling name field (§4.1): the name is padded with spaces to 15
// bytes, a service-identifying 16th byte is appended, each of the
// resulting 16 bytes is split into two nibbles with 'A' added to each
// (yielding 32 ASCII bytes), and the whole thing is wrapped with a
// length-prefix byte (0x20) and a terminating null label (0x00).
func EncodeNetBIOSName(name string) ([]byte, error) {
	if len(name) > 15 {
		return nil, fmt.Errorf("transport: NetBIOS name %q longer than 15 bytes", name)
	}

	var raw [16]byte
	copy(raw[:], name)
	for i := len(name); i < 15; i++ {
		raw[i] = ' '
	}
	raw[15] = netbiosFileServiceSuffix

	encoded := make([]byte, 0, 34)
	encoded = append(encoded, 0x20)
	for _, b := range raw {
		encoded = append(encoded, 'A'+(b>>4), 'A'+(b&0x0f))
	}
	encoded = append(encoded, 0x00)
	return encoded, nil
}
