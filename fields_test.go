package sensitive

import "testing"

func TestDefaultFields(t *testing.T) {
	fs := DefaultFields()

	if fs.Len() != 25 {
		t.Errorf("Len() = %d, want 25", fs.Len())
	}

	for _, name := range []string{"address1", "zip", "phone", "name", "email", "latitude", "buyer_email", "ship_phone_number", "call_details"} {
		if !fs.Contains(name) {
			t.Errorf("Contains(%q) = false, want true", name)
		}
	}

	for _, name := range []string{"address", "id", "city", "password", ""} {
		if fs.Contains(name) {
			t.Errorf("Contains(%q) = true, want false", name)
		}
	}
}

func TestFieldSet_CaseInsensitive(t *testing.T) {
	fs := NewFieldSet("Email", " Phone ")

	for _, name := range []string{"email", "EMAIL", "eMail", "phone", "PHONE"} {
		if !fs.Contains(name) {
			t.Errorf("Contains(%q) = false, want true", name)
		}
	}
}

func TestFieldSet_DropsEmptyAndDuplicates(t *testing.T) {
	fs := NewFieldSet("a", "", "A", "  ", "b")

	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
	names := fs.Names()
	if names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
}

func TestFieldSet_With(t *testing.T) {
	base := NewFieldSet("a")
	extended := base.With("b", "A")

	if extended.Len() != 2 || !extended.Contains("b") {
		t.Errorf("With() = %v", extended.Names())
	}
	if base.Contains("b") {
		t.Error("With() should not modify the receiver")
	}
}

func TestFieldSet_Zero(t *testing.T) {
	var fs FieldSet
	if fs.Contains("name") || fs.Len() != 0 {
		t.Error("zero FieldSet should be empty")
	}
}
