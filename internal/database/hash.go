package database

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// HashDocument returns the hex encoded xxh3 hash of a stored document.
func HashDocument(b []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(b))
}
