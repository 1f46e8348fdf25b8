package sensitive

import (
	"errors"
	"testing"
)

func TestScalar_DumpLoad(t *testing.T) {
	sc := NewScalar(newTestSealer(t))

	sealed, err := sc.Dump("555-1234")
	if err != nil {
		t.Fatalf("Dump() error: %v", err)
	}
	if !IsEncrypted(sealed) {
		t.Fatalf("Dump() = %q, want envelope", sealed)
	}

	again, _ := sc.Dump(sealed)
	if again != sealed {
		t.Error("Dump() should leave envelopes alone")
	}

	opened, err := sc.Load(sealed)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if opened != "555-1234" {
		t.Errorf("Load() = %q, want %q", opened, "555-1234")
	}

	plain, _ := sc.Load("555-1234")
	if plain != "555-1234" {
		t.Error("Load() should leave plain text alone")
	}
}

func TestScalar_Empty(t *testing.T) {
	sc := NewScalar(newTestSealer(t))

	for name, fn := range map[string]func(string) (string, error){"Dump": sc.Dump, "Load": sc.Load} {
		got, err := fn("")
		if err != nil || got != "" {
			t.Errorf("%s(empty) = %q, %v; want empty, nil", name, got, err)
		}
	}
}

func TestScalar_LowerCase(t *testing.T) {
	s := newTestSealer(t)
	sc := NewScalar(s, WithLowerCase())

	sealed, _ := sc.Dump("Alice@Example.COM")
	got, _ := s.Decrypt(sealed)
	if got != "alice@example.com" {
		t.Errorf("got %q, want lower-cased", got)
	}
}

func TestScalar_Ptr(t *testing.T) {
	sc := NewScalar(newTestSealer(t))

	nilOut, err := sc.DumpPtr(nil)
	if err != nil || nilOut != nil {
		t.Errorf("DumpPtr(nil) = %v, %v; want nil, nil", nilOut, err)
	}
	nilOut, err = sc.LoadPtr(nil)
	if err != nil || nilOut != nil {
		t.Errorf("LoadPtr(nil) = %v, %v; want nil, nil", nilOut, err)
	}

	in := "secret"
	sealed, err := sc.DumpPtr(&in)
	if err != nil {
		t.Fatalf("DumpPtr() error: %v", err)
	}
	if in != "secret" {
		t.Error("DumpPtr() should not write through its argument")
	}

	opened, _ := sc.LoadPtr(sealed)
	if *opened != "secret" {
		t.Errorf("LoadPtr() = %q, want %q", *opened, "secret")
	}
}

func TestScalar_Uninitialized(t *testing.T) {
	sc := NewScalar(NewSealer())

	if _, err := sc.Dump(""); !errors.Is(err, ErrUninitialized) {
		t.Errorf("Dump() error = %v, want ErrUninitialized", err)
	}
	if _, err := sc.Load("x"); !errors.Is(err, ErrUninitialized) {
		t.Errorf("Load() error = %v, want ErrUninitialized", err)
	}
	if _, err := sc.DumpPtr(nil); !errors.Is(err, ErrUninitialized) {
		t.Errorf("DumpPtr(nil) error = %v, want ErrUninitialized", err)
	}
	if _, err := sc.LoadPtr(nil); !errors.Is(err, ErrUninitialized) {
		t.Errorf("LoadPtr(nil) error = %v, want ErrUninitialized", err)
	}
}
