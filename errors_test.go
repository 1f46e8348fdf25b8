package sensitive

import (
	"errors"
	"testing"
)

func TestConfigError_Is(t *testing.T) {
	err := newConfigError(ErrInvalidRootKey, "root_keys", "0002")

	if !errors.Is(err, ErrInvalidRootKey) {
		t.Error("ConfigError should unwrap to ErrInvalidRootKey")
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should unwrap to ErrConfig")
	}
	if errors.Is(err, ErrInvalidMasterKey) {
		t.Error("ConfigError should not match ErrInvalidMasterKey")
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newConfigError(ErrInvalidRootKey, "root_keys", "0002"),
			want: `invalid root key for version "0002" (field root_keys)`,
		},
		{
			name: "version only",
			err:  &ConfigError{Err: ErrInvalidKeyVersion, Version: "01"},
			want: `invalid root key version for version "01"`,
		},
		{
			name: "field only",
			err:  &ConfigError{Err: ErrInvalidTag, Field: "Email"},
			want: `invalid tag (field Email)`,
		},
		{
			name: "error only",
			err:  &ConfigError{Err: ErrNoRootKeys},
			want: `no root keys`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	err := &ConfigError{Err: ErrInvalidMasterKey}
	unwrapped := err.Unwrap()

	if len(unwrapped) != 2 || unwrapped[0] != ErrInvalidMasterKey || unwrapped[1] != ErrConfig {
		t.Errorf("Unwrap() = %v, want [ErrInvalidMasterKey ErrConfig]", unwrapped)
	}
}

func TestCodecError_Is(t *testing.T) {
	err := newCodecError(ErrUnmarshal, errors.New("invalid json"))

	if !errors.Is(err, ErrUnmarshal) {
		t.Error("CodecError should unwrap to ErrUnmarshal")
	}
	if errors.Is(err, ErrMarshal) {
		t.Error("CodecError should not match ErrMarshal")
	}
}

func TestCodecError_Message(t *testing.T) {
	err := newCodecError(ErrMarshal, errors.New("unsupported type"))

	want := "marshal failed: unsupported type"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCodecError_NoCause(t *testing.T) {
	err := &CodecError{Err: ErrUnmarshal}

	if got := err.Error(); got != "unmarshal failed" {
		t.Errorf("Error() = %q, want %q", got, "unmarshal failed")
	}
}

func TestErrorsAs_ConfigError(t *testing.T) {
	_, err := NewKeyStore("short", testRoots())

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("errors.As should find *ConfigError in %v", err)
	}
	if cfgErr.Field != "master_cbc_key" {
		t.Errorf("Field = %q, want %q", cfgErr.Field, "master_cbc_key")
	}
}

func TestErrorsAs_CodecError(t *testing.T) {
	err := newCodecError(ErrUnmarshal, errors.New("bad input"))

	var codecErr *CodecError
	if !errors.As(err, &codecErr) {
		t.Fatal("errors.As should find *CodecError")
	}
	if codecErr.Cause == nil || codecErr.Cause.Error() != "bad input" {
		t.Errorf("Cause = %v, want bad input", codecErr.Cause)
	}
}

func TestPassthroughReasons_Distinct(t *testing.T) {
	reasons := []error{
		ErrEmpty, ErrMalformed, ErrUnknownVersion, ErrUnwrap, ErrDecryptPayload,
		ErrDigestMismatch, ErrLegacyVersion, ErrRandom, ErrNotEncrypted, ErrAlreadySealed,
	}

	for i, a := range reasons {
		for j, b := range reasons {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
