package utils

import (
	"bytes"
	"unicode/utf8"
)

// binarySniffLength bounds how much of a payload is inspected for NUL bytes.
const binarySniffLength = 8000

// IsBinary reports whether data should be treated as non-text: it holds a NUL
// byte near the start or is not valid UTF-8.
func IsBinary(data []byte) bool {
	sniffWindow := data
	if len(sniffWindow) > binarySniffLength {
		sniffWindow = sniffWindow[:binarySniffLength]
	}
	if bytes.IndexByte(sniffWindow, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}
