package sensitive

import (
	"encoding/hex"
	"sort"
	"strings"
	"unicode/utf8"
)

// Key material sizes.
const (
	// MasterKeyHexLen is the hex length of the legacy master cbc key (32 bytes).
	MasterKeyHexLen = 64

	// RootKeyHexLen is the hex length of a root key (16 bytes, one AES block).
	RootKeyHexLen = 32

	// VersionLen is the length of a root key version label, in characters.
	VersionLen = 4

	// LegacyVersion is the only version accepted on the two-field legacy format.
	LegacyVersion = "0001"
)

// RootKey is a versioned key used to wrap per-value data keys.
type RootKey struct {
	Version string
	key     []byte
}

// KeyStore holds the root keys and the legacy master key.
// It is immutable once built and safe to share between goroutines.
type KeyStore struct {
	master   []byte
	index    []byte // blind index key, derived from master
	roots    map[string][]byte
	versions []string // sorted ascending
	latest   RootKey
}

// NewKeyStore validates and loads the key material.
//
// masterCBCKeyHex must be 64 hex characters. rootKeys maps a version of 4
// characters (not bytes) to a 32-hex-character key and must not be empty.
// Versions may not contain Separator. The lexicographically greatest version becomes the
// latest key, used for all new encryptions.
func NewKeyStore(masterCBCKeyHex string, rootKeys map[string]string) (*KeyStore, error) {
	if len(masterCBCKeyHex) != MasterKeyHexLen {
		return nil, newConfigError(ErrInvalidMasterKey, "master_cbc_key", "")
	}
	master, err := hex.DecodeString(masterCBCKeyHex)
	if err != nil || len(master) != 2*dataKeySize {
		return nil, newConfigError(ErrInvalidMasterKey, "master_cbc_key", "")
	}

	if len(rootKeys) == 0 {
		return nil, newConfigError(ErrNoRootKeys, "root_keys", "")
	}

	index, err := deriveIndexKey(master)
	if err != nil {
		return nil, newConfigError(ErrInvalidMasterKey, "master_cbc_key", "")
	}

	ks := &KeyStore{
		master:   master,
		index:    index,
		roots:    make(map[string][]byte, len(rootKeys)),
		versions: make([]string, 0, len(rootKeys)),
	}

	for version, keyHex := range rootKeys {
		if utf8.RuneCountInString(version) != VersionLen || strings.Contains(version, Separator) {
			return nil, newConfigError(ErrInvalidKeyVersion, "root_keys", version)
		}
		if len(keyHex) != RootKeyHexLen {
			return nil, newConfigError(ErrInvalidRootKey, "root_keys", version)
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != dataKeySize {
			return nil, newConfigError(ErrInvalidRootKey, "root_keys", version)
		}

		ks.roots[version] = key
		ks.versions = append(ks.versions, version)
	}

	sort.Strings(ks.versions)
	newest := ks.versions[len(ks.versions)-1]
	ks.latest = RootKey{Version: newest, key: ks.roots[newest]}

	return ks, nil
}

// Latest returns the root key used for new encryptions.
func (ks *KeyStore) Latest() RootKey {
	return ks.latest
}

// LatestVersion returns the version label of the latest root key.
func (ks *KeyStore) LatestVersion() string {
	return ks.latest.Version
}

// Lookup returns the root key bytes for version.
func (ks *KeyStore) Lookup(version string) ([]byte, bool) {
	key, ok := ks.roots[version]
	return key, ok
}

// Versions returns all loaded versions in ascending order.
func (ks *KeyStore) Versions() []string {
	out := make([]string, len(ks.versions))
	copy(out, ks.versions)
	return out
}

// masterKey returns the legacy master key bytes.
func (ks *KeyStore) masterKey() []byte {
	return ks.master
}

func (ks *KeyStore) indexKey() []byte {
	return ks.index
}
