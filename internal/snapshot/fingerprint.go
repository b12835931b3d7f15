package snapshot

import (
	"encoding/hex"
	"fmt"
	"strconv"

	mt "github.com/txaty/go-merkletree"

	"fsinventory/internal/hash"
)

// leaf adapts an Entry to go-merkletree's DataBlock.
type leaf Entry

func (l leaf) Serialize() ([]byte, error) {
	return hash.Canonical(
		l.Name,
		l.Path,
		l.ParentDirectory,
		string(l.Type),
		strconv.FormatInt(l.SizeBytes, 10),
	), nil
}

// Fingerprint returns the hex merkle root over entries in their given order.
// Two scans of an unchanged tree produce the same fingerprint.
//
// go-merkletree needs at least two blocks, so a snapshot with zero or one
// entry hashes its single record (or a fixed marker) directly.
func Fingerprint(entries []Entry) (string, error) {
	if len(entries) < 2 {
		data := []byte("empty-snapshot")
		if len(entries) == 1 {
			data, _ = leaf(entries[0]).Serialize()
		}
		return hash.Hex(data), nil
	}

	blocks := make([]mt.DataBlock, len(entries))
	for i, e := range entries {
		blocks[i] = leaf(e)
	}

	tree, err := mt.New(&mt.Config{HashFunc: hash.XXHashFunc}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build merkle tree: %w", err)
	}

	return hex.EncodeToString(tree.Root), nil
}
