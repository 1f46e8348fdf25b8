package json

import (
	"testing"

	"github.com/zoobzio/sensitive"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type TestStruct struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	original := TestStruct{Name: "test", Value: 42}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored TestStruct
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored.Name != original.Name || restored.Value != original.Value {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestMarshalNil(t *testing.T) {
	c := New()

	data, err := c.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}

	if string(data) != "null" {
		t.Errorf("Marshal(nil) = %q, want %q", data, "null")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v struct{}
	err := c.Unmarshal([]byte("invalid json"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestDecodeEncode_PreservesOrder(t *testing.T) {
	c := New()

	input := `{"zeta":1,"alpha":{"phone":"555-1234","b":[true,null,1.50]},"mid":"<x>&"}`

	v, err := c.Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	out, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	if string(out) != input {
		t.Errorf("Encode(Decode()) = %s, want %s", out, input)
	}
}

func TestDecode_Kinds(t *testing.T) {
	c := New()

	v, err := c.Decode([]byte(`{"s":"x","n":-2e3,"b":false,"z":null,"a":[],"o":{}}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	want := map[string]sensitive.Kind{
		"s": sensitive.KindString,
		"n": sensitive.KindNumber,
		"b": sensitive.KindBool,
		"z": sensitive.KindNull,
		"a": sensitive.KindArray,
		"o": sensitive.KindObject,
	}
	for key, kind := range want {
		got, ok := v.Get(key)
		if !ok {
			t.Fatalf("Get(%q) missing", key)
		}
		if got.Kind() != kind {
			t.Errorf("Get(%q).Kind() = %v, want %v", key, got.Kind(), kind)
		}
	}

	if n, _ := v.Get("n"); n.Text() != "-2e3" {
		t.Errorf("number literal = %q, want %q", n.Text(), "-2e3")
	}
}

func TestDecodeInvalid(t *testing.T) {
	c := New()

	tests := []string{"", "{", `{"a":1}}`, `{"a" 1}`, "[1,]"}
	for _, input := range tests {
		if _, err := c.Decode([]byte(input)); err == nil {
			t.Errorf("Decode(%q) should return error", input)
		}
	}
}
