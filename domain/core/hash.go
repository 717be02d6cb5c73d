package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough to tell runs apart in a log line
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// HashCells hashes rendered table cells in order. Cells are separated by a unit
// separator and rows by a record separator so "a","bc" and "ab","c" differ.
func HashCells(rows [][]string) Hash {
	var data strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				data.WriteByte(0x1f)
			}
			data.WriteString(cell)
		}
		data.WriteByte(0x1e)
	}
	return NewHash([]byte(data.String()))
}
