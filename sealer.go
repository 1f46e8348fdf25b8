package sensitive

import (
	"context"
	"encoding/hex"
	"strings"
	"sync/atomic"
)

// Wire format constants.
const (
	// Separator delimits envelope fields.
	Separator = "^"

	envelopeFields = 4
	legacyFields   = 2
)

// State is the lifecycle state of a Sealer.
type State uint8

const (
	// StateUninitialized means no key material has been loaded.
	StateUninitialized State = iota

	// StateInitialized means a KeyStore is published and calls may proceed.
	StateInitialized
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	default:
		return "uninitialized"
	}
}

// Outcome reports whether a value was transformed or handed back unchanged.
type Outcome uint8

const (
	// Passthrough means the input was returned unchanged. Result.Reason says why.
	Passthrough Outcome = iota

	// Transformed means the value was encrypted or decrypted.
	Transformed
)

func (o Outcome) String() string {
	if o == Transformed {
		return "transformed"
	}
	return "passthrough"
}

// Result is the typed outcome of a single seal or open.
type Result struct {
	Value   string
	Outcome Outcome
	Reason  error // set when Outcome is Passthrough
}

// Transformed reports whether the value changed state.
func (r Result) Transformed() bool {
	return r.Outcome == Transformed
}

func transformed(value string) Result {
	return Result{Value: value, Outcome: Transformed}
}

func passthrough(value string, reason error) Result {
	return Result{Value: value, Outcome: Passthrough, Reason: reason}
}

// Sealer implements envelope encryption of single values.
//
// Each Encrypt generates a random data key, encrypts the value with it,
// wraps the data key with the latest root key and emits
//
//	version^envelope_key^digest^ciphertext
//
// Decrypt accepts that format and the legacy "0001^ciphertext" format.
//
// Per-value operations are fail-open: malformed input, unknown key versions,
// padding failures and digest mismatches all return the input unchanged.
// Returning a tampered envelope instead of reporting an integrity error is
// kept for compatibility with data written by other implementations; it can
// hide corruption, so callers that need to know should use Open and inspect
// Result.Reason.
//
// A Sealer is safe for concurrent use. Init may be called again to replace
// the key material.
type Sealer struct {
	keys atomic.Pointer[KeyStore]
}

// NewSealer returns an uninitialized Sealer. Call Init before use.
func NewSealer() *Sealer {
	return &Sealer{}
}

// NewSealerWithKeys returns a Sealer already bound to ks.
func NewSealerWithKeys(ks *KeyStore) *Sealer {
	s := &Sealer{}
	s.Use(ks)
	return s
}

// Init validates the key material and publishes it.
// Validation failures are returned as *ConfigError and leave any previously
// published keys in place.
func (s *Sealer) Init(masterCBCKeyHex string, rootKeys map[string]string) error {
	ks, err := NewKeyStore(masterCBCKeyHex, rootKeys)
	if err != nil {
		emitKeyStoreRejected(context.Background(), err)
		return err
	}
	s.Use(ks)
	return nil
}

// Use publishes an existing KeyStore. A nil ks resets the Sealer.
func (s *Sealer) Use(ks *KeyStore) {
	s.keys.Store(ks)
	if ks != nil {
		emitKeyStoreInitialized(context.Background(), ks.LatestVersion(), len(ks.roots))
	}
}

// State returns the lifecycle state. A nil Sealer is uninitialized.
func (s *Sealer) State() State {
	if s == nil || s.keys.Load() == nil {
		return StateUninitialized
	}
	return StateInitialized
}

// KeyStore returns the published key material. A nil Sealer reports
// ErrUninitialized.
func (s *Sealer) KeyStore() (*KeyStore, error) {
	if s == nil {
		return nil, ErrUninitialized
	}
	ks := s.keys.Load()
	if ks == nil {
		return nil, ErrUninitialized
	}
	return ks, nil
}

// Encrypt seals plaintext. The error is non-nil only when the Sealer is
// uninitialized; every other failure returns plaintext unchanged.
func (s *Sealer) Encrypt(plaintext string) (string, error) {
	res, err := s.Seal(plaintext)
	return res.Value, err
}

// LowerEncrypt lower-cases plaintext before sealing it.
func (s *Sealer) LowerEncrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return s.Encrypt(plaintext)
	}
	return s.Encrypt(strings.ToLower(plaintext))
}

// Decrypt opens ciphertext. The error is non-nil only when the Sealer is
// uninitialized; every other failure returns ciphertext unchanged.
func (s *Sealer) Decrypt(ciphertext string) (string, error) {
	res, err := s.Open(ciphertext)
	return res.Value, err
}

// Seal is the typed form of Encrypt.
func (s *Sealer) Seal(plaintext string) (Result, error) {
	ks, err := s.KeyStore()
	if err != nil {
		return passthrough(plaintext, err), err
	}
	return seal(ks, plaintext), nil
}

// Open is the typed form of Decrypt.
func (s *Sealer) Open(ciphertext string) (Result, error) {
	ks, err := s.KeyStore()
	if err != nil {
		return passthrough(ciphertext, err), err
	}
	return open(ks, ciphertext), nil
}

// IsEncrypted reports whether value has the four-field envelope shape.
// It does not check that the envelope can be opened.
func IsEncrypted(value string) bool {
	return len(splitEnvelope(value)) == envelopeFields
}

// EnvelopeFields returns the fields of value as Decrypt sees them: four for
// an envelope, two for the legacy form.
func EnvelopeFields(value string) []string {
	return splitEnvelope(value)
}

// splitEnvelope splits on Separator and drops trailing empty fields, so
// "a^b^c^" has three fields. Other implementations of the wire format split
// the same way, which keeps the "already encrypted" test consistent.
func splitEnvelope(value string) []string {
	parts := strings.Split(value, Separator)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func seal(ks *KeyStore, plaintext string) Result {
	if plaintext == "" {
		return passthrough(plaintext, ErrEmpty)
	}

	digest := sha256Hex(plaintext)

	dataKeyHex, err := randomKeyHex()
	if err != nil {
		return passthrough(plaintext, err)
	}
	dataKey, err := hex.DecodeString(dataKeyHex)
	if err != nil {
		return passthrough(plaintext, err)
	}

	secret, err := encryptCBC([]byte(plaintext), dataKey)
	if err != nil {
		return passthrough(plaintext, err)
	}

	latest := ks.Latest()
	wrapped, err := encryptCBC([]byte(dataKeyHex), latest.key)
	if err != nil {
		return passthrough(plaintext, err)
	}

	return transformed(strings.Join([]string{latest.Version, wrapped, digest, secret}, Separator))
}

func open(ks *KeyStore, ciphertext string) Result {
	if ciphertext == "" {
		return passthrough(ciphertext, ErrEmpty)
	}

	parts := splitEnvelope(ciphertext)
	switch len(parts) {
	case envelopeFields:
		return openEnvelope(ks, ciphertext, parts)
	case legacyFields:
		return openLegacy(ks, ciphertext, parts)
	default:
		return passthrough(ciphertext, ErrMalformed)
	}
}

func openEnvelope(ks *KeyStore, ciphertext string, parts []string) Result {
	version, wrapped, digest, secret := parts[0], parts[1], parts[2], parts[3]
	if version == "" || wrapped == "" || digest == "" || secret == "" {
		return passthrough(ciphertext, ErrMalformed)
	}

	rootKey, ok := ks.Lookup(version)
	if !ok {
		return passthrough(ciphertext, ErrUnknownVersion)
	}

	dataKeyHex, err := decryptCBC(wrapped, rootKey)
	if err != nil || len(dataKeyHex) == 0 {
		return passthrough(ciphertext, ErrUnwrap)
	}
	dataKey, err := hex.DecodeString(string(dataKeyHex))
	if err != nil || len(dataKey) != dataKeySize {
		return passthrough(ciphertext, ErrUnwrap)
	}

	plaintext, err := decryptCBC(secret, dataKey)
	if err != nil || len(plaintext) == 0 {
		return passthrough(ciphertext, ErrDecryptPayload)
	}

	if sha256Hex(string(plaintext)) != digest {
		return passthrough(ciphertext, ErrDigestMismatch)
	}

	return transformed(string(plaintext))
}

func openLegacy(ks *KeyStore, ciphertext string, parts []string) Result {
	version, secret := parts[0], parts[1]
	if version != LegacyVersion {
		return passthrough(ciphertext, ErrLegacyVersion)
	}
	if secret == "" {
		return passthrough(ciphertext, ErrMalformed)
	}

	plaintext, err := decryptCBC(secret, ks.masterKey())
	if err != nil || len(plaintext) == 0 {
		return passthrough(ciphertext, ErrDecryptPayload)
	}

	return transformed(string(plaintext))
}
