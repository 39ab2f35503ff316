package braid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashLen is the size of a block hash in bytes.
const HashLen = 32

// BlockHash is the content digest of a block header. It is treated as an
// opaque value by this repository; producing it is the block creator's job.
type BlockHash [HashLen]byte

// ZeroHash is the zero value of a block hash.
var ZeroHash = BlockHash{}

// HashFromData returns the digest of the concatenation of the given byte
// slices. It is used for derived identifiers (e.g. genesis headers) and by
// test fixtures.
func HashFromData(data ...[]byte) BlockHash {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var hash BlockHash
	copy(hash[:], h.Sum(nil))
	return hash
}

// HashFromHex parses a hex-encoded block hash.
func HashFromHex(s string) (BlockHash, error) {
	var hash BlockHash
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroHash, fmt.Errorf("could not decode hash hex: %w", err)
	}
	if len(b) != HashLen {
		return ZeroHash, fmt.Errorf("invalid hash length (%d != %d)", len(b), HashLen)
	}
	copy(hash[:], b)
	return hash, nil
}

func (h BlockHash) String() string {
	return hex.EncodeToString(h[:])
}

func (h BlockHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *BlockHash) UnmarshalText(text []byte) error {
	hash, err := HashFromHex(string(text))
	if err != nil {
		return err
	}
	*h = hash
	return nil
}
