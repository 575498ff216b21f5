package textutil

import (
	"bytes"
	"strings"
)

// NormalizeLF converts CRLF and lone CR to LF and replaces invalid UTF-8
// with U+FFFD, so a file touched by a Windows editor still compares equal.
func NormalizeLF(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return bytes.ToValidUTF8(b, []byte("\uFFFD"))
}

// ConstName is the constant name for an identifier: the identifier uppercased.
func ConstName(id string) string {
	return strings.ToUpper(id)
}
