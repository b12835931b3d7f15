package hash

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// fieldSep cannot occur inside a path or a decimal size.
const fieldSep = 0x00

// XXHashFunc is the hash function handed to go-merkletree.
// It converts []byte input to a big-endian xxHash64 digest.
func XXHashFunc(data []byte) ([]byte, error) {
	sum := xxhash.Sum64(data)

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, sum)
	return buf, nil
}

// Canonical joins fields into an unambiguous byte record for leaf hashing.
func Canonical(fields ...string) []byte {
	n := len(fields)
	for _, f := range fields {
		n += len(f)
	}

	buf := make([]byte, 0, n)
	for i, f := range fields {
		if i > 0 {
			buf = append(buf, fieldSep)
		}
		buf = append(buf, f...)
	}
	return buf
}

// Hex returns the hex-encoded XXHashFunc digest of data.
func Hex(data []byte) string {
	sum, _ := XXHashFunc(data)
	return hex.EncodeToString(sum)
}
