package sensitive

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrConfig is the parent of every configuration failure.
	// Every *ConfigError satisfies errors.Is(err, ErrConfig).
	ErrConfig = errors.New("invalid configuration")

	// ErrInvalidMasterKey indicates the legacy master key is not 64 hex characters.
	ErrInvalidMasterKey = errors.New("invalid master cbc key")

	// ErrNoRootKeys indicates no root keys were supplied.
	ErrNoRootKeys = errors.New("no root keys")

	// ErrInvalidKeyVersion indicates a root key version is not 4 characters.
	ErrInvalidKeyVersion = errors.New("invalid root key version")

	// ErrInvalidRootKey indicates a root key is not 32 hex characters.
	ErrInvalidRootKey = errors.New("invalid root key")

	// ErrInvalidTag indicates a struct tag has an invalid value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrUninitialized indicates a Sealer was used before Init.
	ErrUninitialized = errors.New("sealer not initialized")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrYAMLAliasing rejects YAML documents whose aliases expand far past
	// their written size.
	ErrYAMLAliasing = errors.New("yaml document contains excessive aliasing")
)

// Pass-through reasons. These never escape Encrypt, Decrypt, Dump or Load;
// they are reported on Result.Reason so callers and tests can see why a value
// was returned unchanged.
var (
	ErrEmpty          = errors.New("empty value")
	ErrMalformed      = errors.New("malformed envelope")
	ErrUnknownVersion = errors.New("unknown root key version")
	ErrUnwrap         = errors.New("data key unwrap failed")
	ErrDecryptPayload = errors.New("payload decrypt failed")
	ErrDigestMismatch = errors.New("digest mismatch")
	ErrLegacyVersion  = errors.New("unsupported legacy version")
	ErrRandom         = errors.New("random source failed")
	ErrNotEncrypted   = errors.New("value is not an envelope")
	ErrAlreadySealed  = errors.New("value is already an envelope")
)

// ConfigError represents a key or tag configuration error.
// It wraps a sentinel error with the offending field and key version.
type ConfigError struct {
	Err     error  // Underlying sentinel error (ErrInvalidRootKey, etc.)
	Field   string // Config field or struct field that triggered the error
	Version string // Root key version, when one is involved
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Version != "" {
		return fmt.Sprintf("%s for version %q (field %s)", e.Err.Error(), e.Version, e.Field)
	}
	if e.Version != "" {
		return fmt.Sprintf("%s for version %q", e.Err.Error(), e.Version)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() []error {
	return []error{e.Err, ErrConfig}
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for key validation failures.
func newConfigError(sentinel error, field, version string) error {
	return &ConfigError{
		Err:     sentinel,
		Field:   field,
		Version: version,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
