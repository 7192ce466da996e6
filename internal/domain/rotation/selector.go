package rotation

import (
	"crypto/sha256"
	"encoding/binary"
)

// Domain-separation tags. Each weekly feature hashes its own tag so the
// regatta seed and the tide omen never correlate.
const (
	TagRegatta = "booty-hunt-regatta"
	TagTide    = "booty-hunt-tide"
)

// Select computes the stable 32-byte digest for a week key under a
// domain-separation tag. Pure function: same inputs, same digest.
func Select(weekKey, tag string) [sha256.Size]byte {
	h := sha256.New()
	h.Write([]byte(weekKey))
	h.Write([]byte(tag))
	var digest [sha256.Size]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

// Seed derives the regatta seed for a week key: the first 8 digest bytes
// read big-endian as a signed 64-bit integer, absolute value. Computed on
// the unsigned form so the minimum signed value cannot wrap back negative.
func Seed(weekKey string) int64 {
	digest := Select(weekKey, TagRegatta)
	u := binary.BigEndian.Uint64(digest[:8])
	if u > 1<<63 {
		u = -u
	}
	return int64(u &^ (1 << 63))
}

// Index maps a week key and tag onto [0, n) using the first digest byte.
func Index(weekKey, tag string, n int) int {
	digest := Select(weekKey, tag)
	return int(digest[0]) % n
}
