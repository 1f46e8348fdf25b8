package sensitive_test

import (
	"context"
	"testing"

	"github.com/zoobzio/sensitive"
	"github.com/zoobzio/sensitive/json"
	sensitivetest "github.com/zoobzio/sensitive/testing"
)

func TestSealer_Vectors(t *testing.T) {
	s := sensitivetest.TestSealer(t)

	for _, v := range sensitivetest.Vectors() {
		t.Run(v.Name, func(t *testing.T) {
			res, err := s.Open(v.Envelope)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			if !res.Transformed() {
				t.Fatalf("Open() passed through: %v", res.Reason)
			}
			if res.Value != v.Plaintext {
				t.Errorf("got %q, want %q", res.Value, v.Plaintext)
			}
		})
	}
}

func TestWalker_Vectors(t *testing.T) {
	w := sensitivetest.TestWalker(t)

	for _, v := range sensitivetest.Vectors() {
		t.Run(v.Name, func(t *testing.T) {
			out, err := w.Load(sensitive.Object(sensitive.Entry("call_details", sensitive.String(v.Envelope))))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			got, ok := out.Get("call_details")
			if !ok {
				t.Fatal("call_details missing")
			}
			if got.Text() != v.Plaintext {
				t.Errorf("got %q, want %q", got.Text(), v.Plaintext)
			}
		})
	}
}

func TestProcessor_LoadVector(t *testing.T) {
	proc, err := sensitive.NewProcessor[sensitivetest.Customer](json.New(), sensitivetest.TestSealer(t))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	v := sensitivetest.Vectors()[0]
	data := []byte(`{"id":"1","name":"` + v.Envelope + `"}`)

	restored, err := proc.Load(context.Background(), data)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if restored.Name != v.Plaintext {
		t.Errorf("Name = %q, want %q", restored.Name, v.Plaintext)
	}
}
