// Package sensitive provides field-level envelope encryption for personal data
// embedded in structured records.
//
// Values are sealed into a versioned, "^"-delimited envelope:
//
//	version^envelope_key^digest^ciphertext
//
// where each value gets a fresh AES-128 data key, the data key is wrapped with
// the latest root key, and digest is the SHA-256 of the plaintext. Envelopes
// written by other implementations of the same format open here and the
// other way round.
//
// # Keys
//
// A KeyStore holds the versioned root keys and the legacy master key. It is
// immutable; a Sealer publishes one atomically:
//
//	s := sensitive.NewSealer()
//	if err := s.Init(masterHex, map[string]string{"0001": rootHex}); err != nil {
//	    return err // *ConfigError, fail loud
//	}
//
// # Fail-open
//
// Per-value operations never fail on bad input. Malformed envelopes, unknown
// key versions and digest mismatches return the input unchanged. Use Open or
// Seal to see why through Result.Reason. The only error these operations
// return is ErrUninitialized.
//
// # Documents
//
// A Walker seals the values of allow-listed members anywhere in a Value tree:
//
//	w := sensitive.NewWalker(s)
//	doc, _ := sensitive.ParseJSON([]byte(`{"name":"Alice","note":{"phone":"555-1234"}}`))
//	sealed, _ := w.Dump(doc)
//	opened, _ := w.Load(sealed)
//
// Document does the same over encoded bytes through a Codec, and Processor
// does it for Go structs tagged `sensitive:"encrypt"`.
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package sensitive

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// DocumentCodec is a Codec that can also decode into and encode from the
// ordered Value tree. All codec subpackages implement it.
type DocumentCodec interface {
	Codec

	// Decode parses data into a Value, keeping member order.
	Decode(data []byte) (Value, error)

	// Encode renders v, keeping member order.
	Encode(v Value) ([]byte, error)
}

// Cloner allows types to provide deep copy logic.
// Processor requires it so Store never mutates the caller's value.
//
// For simple value types with no pointers, slices, or maps, Clone can simply
// return the receiver value:
//
//	func (u User) Clone() User { return u }
//
// For types with reference fields, ensure deep copying:
//
//	func (o Order) Clone() Order {
//	    emails := make([]string, len(o.Emails))
//	    copy(emails, o.Emails)
//	    return Order{ID: o.ID, Emails: emails}
//	}
type Cloner[T any] interface {
	Clone() T
}
