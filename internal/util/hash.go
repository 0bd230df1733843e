package util

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// RowHash derives a row key from its field values. Fields are separated by
// a NUL so ("ab","c") and ("a","bc") hash differently.
func RowHash(fields []string) string {
	h := blake3.New()
	for _, f := range fields {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}
