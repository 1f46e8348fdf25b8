package sensitive

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// indexInfo binds the derived key to its purpose.
const indexInfo = "sensitive.blind-index.v1"

// deriveIndexKey derives the blind index key from the master key.
func deriveIndexKey(master []byte) ([]byte, error) {
	key := make([]byte, sha256.Size)
	r := hkdf.New(sha256.New, master, nil, []byte(indexInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("deriving index key: %w", err)
	}
	return key, nil
}

// BlindIndex returns a deterministic keyed digest of value for equality
// lookups next to a sealed column. Matching is case-insensitive: the value
// is lower-cased before hashing. The empty string indexes to "".
//
// The digest is HMAC-SHA256 under a key derived from the master key, so it
// survives root key rotation.
func (s *Sealer) BlindIndex(value string) (string, error) {
	ks, err := s.KeyStore()
	if err != nil {
		return "", err
	}
	return blindIndex(ks, value), nil
}

func blindIndex(ks *KeyStore, value string) string {
	if value == "" {
		return ""
	}
	mac := hmac.New(sha256.New, ks.indexKey())
	mac.Write([]byte(strings.ToLower(value)))
	return hex.EncodeToString(mac.Sum(nil))
}
