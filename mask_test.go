package sensitive

import (
	"testing"
)

func TestEmailMasker(t *testing.T) {
	m := EmailMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"alice@example.com", "a***@example.com"},
		{"bob@test.org", "b***@test.org"},
		{"a@b.com", "a***@b.com"},
		{"张三@example.cn", "张***@example.cn"},
		{"noatsign", "********"}, // No @
		{"@example.com", "************"},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("EmailMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestPhoneMasker(t *testing.T) {
	m := PhoneMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"(555) 123-4567", "(***) ***-4567"},
		{"555-123-4567", "***-***-4567"},
		{"5551234567", "***-***-4567"},
		{"+1 555 123 4567", "+** ***-***-4567"},
		{"555-1234", "***-1234"},
		{"123", "***"}, // Too short
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("PhoneMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNameMasker(t *testing.T) {
	m := NameMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"John Smith", "J*** S****"},
		{"Alice", "A****"},
		{"  Mary   Ann  ", "M*** A**"},
		{"张三", "张*"},
		{"", ""},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("NameMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestPostalMasker(t *testing.T) {
	m := PostalMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"94107", "94***"},
		{"94107-1234", "94***-****"},
		{"SW1A 1AA", "SW** ***"},
		{"12", "**"},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("PostalMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestAddressMasker(t *testing.T) {
	m := AddressMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"1 Main St, Apt 4", "* **** **, *** *"},
		{"", ""},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("AddressMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestCoordinateMasker(t *testing.T) {
	m := CoordinateMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"37.774929", "37.7*****"},
		{"-122.419416", "-122.4*****"},
		{"37.", "***"},
		{"37", "**"},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("CoordinateMasker(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestFullMasker(t *testing.T) {
	m := FullMasker()

	if got := m.Mask("secret"); got != "******" {
		t.Errorf("FullMasker(secret) = %q, want %q", got, "******")
	}
	if got := m.Mask("中文"); got != "**" {
		t.Errorf("FullMasker(中文) = %q, want %q", got, "**")
	}
}

func TestMaskTypeForField(t *testing.T) {
	tests := []struct {
		field string
		want  MaskType
	}{
		{"email", MaskEmail},
		{"Buyer_Email", MaskEmail},
		{"phone", MaskPhone},
		{"ship_phone_number", MaskPhone},
		{"zip", MaskPostal},
		{"buyer_postal_code", MaskPostal},
		{"address1", MaskAddress},
		{"ship_address_2", MaskAddress},
		{"latitude", MaskCoordinate},
		{"longitude", MaskCoordinate},
		{"first_name", MaskName},
		{"company", MaskName},
		{"call_details", MaskFull},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := MaskTypeForField(tt.field); got != tt.want {
				t.Errorf("MaskTypeForField(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}
