package client

import "strings"

// maxPathUTF16Units is the largest path length, in UTF-16 code units,
// this client will send (spec §8 "paths at or near 255 UTF-16 code units
// are accepted; longer paths fail with Argument").
const maxPathUTF16Units = 255

// validatePath rejects paths containing '/', "..", or a NUL byte, and
// paths whose UTF-16 encoding would exceed maxPathUTF16Units code units
// (spec §4.2 "Path handling").
func validatePath(path string) error {
	if path == "" {
		return &ArgumentError{Field: "path", Reason: "empty"}
	}
	if strings.ContainsRune(path, '/') {
		return &ArgumentError{Field: "path", Reason: "contains forward slash"}
	}
	if strings.Contains(path, "..") {
		return &ArgumentError{Field: "path", Reason: "contains '..'"}
	}
	if strings.ContainsRune(path, 0) {
		return &ArgumentError{Field: "path", Reason: "contains NUL"}
	}
	units := 0
	for _, r := range path {
		if r > 0xffff {
			units += 2
		} else {
			units++
		}
	}
	if units > maxPathUTF16Units {
		return &ArgumentError{Field: "path", Reason: "exceeds 255 UTF-16 code units"}
	}
	return nil
}
