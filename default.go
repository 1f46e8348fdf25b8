package sensitive

import "sync/atomic"

var (
	defaultSealer = NewSealer()
	defaultWalker atomic.Pointer[Walker]
)

// Init loads keys into the package default Sealer and rebuilds the default
// Walker with opts. Hosts that serve one key set per process call it once at
// boot. Code that needs more than one key set should build its own Sealer.
func Init(masterCBCKeyHex string, rootKeys map[string]string, opts ...WalkerOption) error {
	if err := defaultSealer.Init(masterCBCKeyHex, rootKeys); err != nil {
		return err
	}
	defaultWalker.Store(NewWalker(defaultSealer, opts...))
	return nil
}

// Default returns the package default Sealer.
func Default() *Sealer {
	return defaultSealer
}

// DefaultWalker returns the Walker built by the last successful Init, or a
// Walker with the default allow-list if Init has not run.
func DefaultWalker() *Walker {
	if w := defaultWalker.Load(); w != nil {
		return w
	}
	return NewWalker(defaultSealer)
}

// Encrypt seals plaintext with the default Sealer.
func Encrypt(plaintext string) (string, error) {
	return defaultSealer.Encrypt(plaintext)
}

// Decrypt opens ciphertext with the default Sealer.
func Decrypt(ciphertext string) (string, error) {
	return defaultSealer.Decrypt(ciphertext)
}

// Dump seals allow-listed fields of v with the default Walker.
func Dump(v Value) (Value, error) {
	return DefaultWalker().Dump(v)
}

// Load opens allow-listed fields of v with the default Walker.
func Load(v Value) (Value, error) {
	return DefaultWalker().Load(v)
}
