package domain

import (
	"encoding/hex"

	dErrors "haven/pkg/domain-errors"
)

// HashSize is the fixed length of proof and metadata hashes in bytes.
const HashSize = 32

// Hash is an opaque fixed-size digest. The stores never interpret its
// contents; they only check presence and uniqueness. The zero value means
// "no hash supplied".
type Hash [HashSize]byte

// ParseHash decodes a hex-encoded hash at a trust boundary.
func ParseHash(s string) (Hash, error) {
	if s == "" {
		return Hash{}, dErrors.New(dErrors.CodeInvalidInput, "hash cannot be empty")
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != HashSize {
		return Hash{}, dErrors.New(dErrors.CodeInvalidInput, "hash must be 32 hex-encoded bytes")
	}
	var h Hash
	copy(h[:], raw)
	return h, nil
}

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// IsZero reports whether no hash was supplied.
func (h Hash) IsZero() bool { return h == Hash{} }
