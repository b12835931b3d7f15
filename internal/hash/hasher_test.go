package hash

import (
	"encoding/binary"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXXHashFunc(t *testing.T) {
	data := []byte("test data")

	hashBytes, err := XXHashFunc(data)
	require.NoError(t, err)
	require.Len(t, hashBytes, 8)

	assert.Equal(t, xxhash.Sum64(data), binary.BigEndian.Uint64(hashBytes))

	// same input, same output
	again, err := XXHashFunc(data)
	require.NoError(t, err)
	assert.Equal(t, hashBytes, again)
}

func TestXXHashFunc_EmptyData(t *testing.T) {
	hashBytes, err := XXHashFunc([]byte{})
	require.NoError(t, err)
	assert.Len(t, hashBytes, 8)
}

func TestCanonical_Unambiguous(t *testing.T) {
	a := Canonical("ab", "c")
	b := Canonical("a", "bc")
	assert.NotEqual(t, a, b)
	assert.Equal(t, []byte("ab\x00c"), a)
}

func TestHex(t *testing.T) {
	h := Hex([]byte("x"))
	assert.Len(t, h, 16)
	assert.Equal(t, h, Hex([]byte("x")))
	assert.NotEqual(t, h, Hex([]byte("y")))
}
