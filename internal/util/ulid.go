package util

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// newULID returns a monotonic ULID, so names made within the same
// millisecond still differ.
func newULID(now time.Time) ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy)
}

// ExportFileName builds "<base>-<id>.csv", where id is the lowercase tail
// of a fresh ULID. Repeated exports from the viewer never overwrite each
// other.
func ExportFileName(base string) string {
	base = strings.TrimSuffix(base, ".csv")
	if base == "" {
		base = "export"
	}
	id := strings.ToLower(newULID(time.Now()).String())
	return base + "-" + id[len(id)-7:] + ".csv"
}
