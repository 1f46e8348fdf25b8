package testing

import (
	"testing"

	"github.com/zoobzio/sensitive"
)

func TestTestSealer(t *testing.T) {
	s := TestSealer(t)
	if s.State() != sensitive.StateInitialized {
		t.Fatalf("State() = %v, want initialized", s.State())
	}

	ks, err := s.KeyStore()
	if err != nil {
		t.Fatalf("KeyStore() error: %v", err)
	}
	if ks.LatestVersion() != RootVersion {
		t.Errorf("LatestVersion() = %q, want %q", ks.LatestVersion(), RootVersion)
	}
}

func TestTestWalker(t *testing.T) {
	w := TestWalker(t, sensitive.WithFields(sensitive.NewFieldSet("name")))
	if !w.Fields().Contains("NAME") {
		t.Error("TestWalker() should apply options")
	}
}

func TestVectors_Open(t *testing.T) {
	s := TestSealer(t)

	for _, v := range Vectors() {
		t.Run(v.Name, func(t *testing.T) {
			got, err := s.Decrypt(v.Envelope)
			if err != nil {
				t.Fatalf("Decrypt() error: %v", err)
			}
			if got != v.Plaintext {
				t.Errorf("Decrypt() = %q, want %q", got, v.Plaintext)
			}
		})
	}
}

func TestMustParseJSON(t *testing.T) {
	v := MustParseJSON(t, `{"a":[1,2]}`)
	if v.Kind() != sensitive.KindObject {
		t.Errorf("Kind() = %v, want object", v.Kind())
	}
}

func TestCustomer_Clone(t *testing.T) {
	phone := "555-1234"
	original := Customer{
		ID:      "1",
		Phone:   &phone,
		Aliases: []string{"a"},
		Notes:   map[string]string{"k": "v"},
		Work:    &Address{Line1: "1 Main St"},
	}

	cloned := original.Clone()
	*cloned.Phone = "changed"
	cloned.Aliases[0] = "changed"
	cloned.Notes["k"] = "changed"
	cloned.Work.Line1 = "changed"

	if *original.Phone != "555-1234" {
		t.Error("Clone() did not create independent Phone")
	}
	if original.Aliases[0] != "a" {
		t.Error("Clone() did not create independent Aliases")
	}
	if original.Notes["k"] != "v" {
		t.Error("Clone() did not create independent Notes")
	}
	if original.Work.Line1 != "1 Main St" {
		t.Error("Clone() did not create independent Work")
	}
}

func TestSimpleUser_Clone(t *testing.T) {
	original := SimpleUser{ID: "1", Name: "Alice"}
	cloned := original.Clone()

	if cloned.ID != original.ID || cloned.Name != original.Name {
		t.Error("Clone() should copy all fields")
	}
}
