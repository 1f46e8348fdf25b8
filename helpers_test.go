package sensitive

import "testing"

const (
	testMasterHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	testRootHex   = "0123456789abcdef0123456789abcdef"
	testRootHex2  = "fedcba9876543210fedcba9876543210"
)

func testRoots() map[string]string {
	return map[string]string{"0001": testRootHex}
}

func newTestSealer(tb testing.TB) *Sealer {
	tb.Helper()
	s := NewSealer()
	if err := s.Init(testMasterHex, testRoots()); err != nil {
		tb.Fatalf("Init() error: %v", err)
	}
	return s
}

func newTestKeyStore(tb testing.TB, roots map[string]string) *KeyStore {
	tb.Helper()
	ks, err := NewKeyStore(testMasterHex, roots)
	if err != nil {
		tb.Fatalf("NewKeyStore() error: %v", err)
	}
	return ks
}

// sealFixture seals plaintext under the test keys.
func sealFixture(tb testing.TB, plaintext string) string {
	tb.Helper()
	sealed, err := newTestSealer(tb).Encrypt(plaintext)
	if err != nil {
		tb.Fatalf("Encrypt() error: %v", err)
	}
	return sealed
}
