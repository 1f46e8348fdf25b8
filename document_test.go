package sensitive

import (
	"context"
	"errors"
	"testing"
)

func TestDocument_StoreLoad(t *testing.T) {
	doc := NewDocument(&testCodec{}, NewWalker(newTestSealer(t)))
	input := []byte(`{"id":7,"name":"Alice","address":{"zip":"02139","city":"Cambridge"}}`)

	if doc.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q", doc.ContentType())
	}

	stored, err := doc.Store(context.Background(), input)
	if err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	v, _ := ParseJSON(stored)
	if got := mustGet(t, v, "name"); !IsEncrypted(got.Text()) {
		t.Errorf("name = %q, want envelope", got.Text())
	}
	if got := mustGet(t, v, "address", "city"); got.Text() != "Cambridge" {
		t.Errorf("city = %q, want unchanged", got.Text())
	}

	loaded, err := doc.Load(context.Background(), stored)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if string(loaded) != string(input) {
		t.Errorf("Load(Store(x)) = %s, want %s", loaded, input)
	}
}

func TestDocument_DisableWrite(t *testing.T) {
	doc := NewDocument(&testCodec{}, NewWalker(newTestSealer(t), WithDisableWrite(true)))
	input := []byte(`{ "name" : "Alice" }`)

	out, err := doc.Store(context.Background(), input)
	if err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	if string(out) != string(input) {
		t.Errorf("Store() = %s, want input byte for byte", out)
	}
}

func TestDocument_Display(t *testing.T) {
	doc := NewDocument(&testCodec{}, NewWalker(newTestSealer(t)))

	stored, _ := doc.Store(context.Background(), []byte(`{"phone":"555-123-4567","note":"x"}`))
	out, err := doc.Display(context.Background(), stored)
	if err != nil {
		t.Fatalf("Display() error: %v", err)
	}

	want := `{"phone":"***-***-4567","note":"x"}`
	if string(out) != want {
		t.Errorf("Display() = %s, want %s", out, want)
	}
}

func TestDocument_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("uninitialized", func(t *testing.T) {
		doc := NewDocument(&testCodec{}, NewWalker(NewSealer()))
		if _, err := doc.Store(ctx, []byte(`{}`)); !errors.Is(err, ErrUninitialized) {
			t.Errorf("Store() error = %v, want ErrUninitialized", err)
		}
		if _, err := doc.Load(ctx, []byte(`{}`)); !errors.Is(err, ErrUninitialized) {
			t.Errorf("Load() error = %v, want ErrUninitialized", err)
		}
	})

	t.Run("decode", func(t *testing.T) {
		doc := NewDocument(&testCodec{}, NewWalker(newTestSealer(t)))
		_, err := doc.Load(ctx, []byte(`{"name":`))
		if !errors.Is(err, ErrUnmarshal) {
			t.Errorf("Load() error = %v, want ErrUnmarshal", err)
		}
	})

	t.Run("encode", func(t *testing.T) {
		doc := NewDocument(&failingCodec{failMarshal: true}, NewWalker(newTestSealer(t)))
		_, err := doc.Store(ctx, []byte(`{"name":"Alice"}`))
		if !errors.Is(err, ErrMarshal) {
			t.Errorf("Store() error = %v, want ErrMarshal", err)
		}
	})
}
