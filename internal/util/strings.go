package util

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ToValidUTF8 returns s unchanged when it is valid UTF-8 and otherwise
// decodes it as Latin-1. Spreadsheet exports from older shop software are
// often ISO-8859-1, and decoding keeps vendor names like "Müller Kfz" intact.
func ToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	// Latin-1 maps every byte to a code point, so this cannot fail
	decoded, _ := charmap.ISO8859_1.NewDecoder().String(s)
	return decoded
}

// TrimBOM strips a leading UTF-8 byte order mark.
func TrimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, utf8BOM)
}
