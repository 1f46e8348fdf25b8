package bson

import (
	"errors"
	"testing"

	"github.com/zoobzio/sensitive"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/bson")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type TestStruct struct {
		Name  string `bson:"name"`
		Value int    `bson:"value"`
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

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v struct{}
	err := c.Unmarshal([]byte("invalid bson"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestDecodeEncode_RoundTrip(t *testing.T) {
	c := New()

	original := sensitive.Object(
		sensitive.Entry("zeta", sensitive.String("first")),
		sensitive.Entry("count", sensitive.Int(7)),
		sensitive.Entry("big", sensitive.Int(1<<40)),
		sensitive.Entry("ratio", sensitive.Float(0.25)),
		sensitive.Entry("ok", sensitive.Bool(true)),
		sensitive.Entry("none", sensitive.Null()),
		sensitive.Entry("address", sensitive.Object(
			sensitive.Entry("zip", sensitive.String("02139")),
		)),
		sensitive.Entry("phones", sensitive.Array(sensitive.String("555-1234"), sensitive.String("555-9876"))),
	)

	data, err := c.Encode(original)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	restored, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if !restored.Equal(original) {
		got, _ := restored.MarshalJSON()
		want, _ := original.MarshalJSON()
		t.Errorf("round-trip mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestEncode_NotDocument(t *testing.T) {
	c := New()

	_, err := c.Encode(sensitive.String("alone"))
	if !errors.Is(err, ErrNotDocument) {
		t.Errorf("Encode(string) error = %v, want ErrNotDocument", err)
	}
}

func TestDecode_UnsupportedType(t *testing.T) {
	c := New()

	data, err := bson.Marshal(bson.D{{Key: "_id", Value: primitive.NewObjectID()}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	if _, err := c.Decode(data); err == nil {
		t.Error("Decode(ObjectID) should return error")
	}
}

func TestDecodeInvalid(t *testing.T) {
	c := New()

	if _, err := c.Decode([]byte("invalid bson")); err == nil {
		t.Error("Decode(invalid) should return error")
	}
}
