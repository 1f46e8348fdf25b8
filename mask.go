package sensitive

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaskType names a masking rule for display.
type MaskType string

const (
	MaskEmail      MaskType = "email"      // alice@example.com -> a***@example.com
	MaskPhone      MaskType = "phone"      // (555) 123-4567 -> (***) ***-4567
	MaskName       MaskType = "name"       // John Smith -> J*** S****
	MaskPostal     MaskType = "postal"     // 94107-1234 -> 94***-****
	MaskAddress    MaskType = "address"    // 1 Main St, Apt 4 -> * **** **, *** *
	MaskCoordinate MaskType = "coordinate" // 37.774929 -> 37.7*****
	MaskFull       MaskType = "full"       // anything -> ********
)

// Masker hides most of a value while keeping it recognisable.
type Masker interface {
	// Mask applies masking to the value.
	Mask(value string) string
}

// MaskerFunc adapts a function to Masker.
type MaskerFunc func(string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string { return f(value) }

// emailMasker masks email format: alice@example.com -> a***@example.com
type emailMasker struct{}

// EmailMasker returns a masker for email addresses.
// Preserves first character of local part and full domain.
func EmailMasker() Masker {
	return &emailMasker{}
}

func (m *emailMasker) Mask(value string) string {
	atIdx := strings.LastIndex(value, "@")
	if atIdx < 1 {
		return maskAll(value)
	}

	local := value[:atIdx]
	domain := value[atIdx:]

	first, _ := utf8.DecodeRuneInString(local)
	return string(first) + "***" + domain
}

// phoneMasker masks phone format: (555) 123-4567 -> (***) ***-4567
type phoneMasker struct{}

// PhoneMasker returns a masker for phone numbers.
// Preserves the last 4 digits, masks everything else.
func PhoneMasker() Masker {
	return &phoneMasker{}
}

func (m *phoneMasker) Mask(value string) string {
	digits := extractDigits(value)
	if len(digits) < 4 {
		return maskAll(value)
	}

	last4 := digits[len(digits)-4:]

	switch {
	case strings.HasPrefix(value, "(") && len(digits) >= 10:
		return "(***) ***-" + last4
	case strings.HasPrefix(value, "+") && len(digits) > 10:
		return "+** ***-***-" + last4
	case len(digits) >= 10:
		return "***-***-" + last4
	default:
		return "***-" + last4
	}
}

// nameMasker masks names: John Smith -> J*** S****
type nameMasker struct{}

// NameMasker returns a masker for personal and company names.
// Preserves first letter of each word, masks the rest.
func NameMasker() Masker {
	return &nameMasker{}
}

func (m *nameMasker) Mask(value string) string {
	words := strings.Fields(value)
	masked := make([]string, len(words))

	for i, word := range words {
		runes := []rune(word)
		masked[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
	}

	return strings.Join(masked, " ")
}

// postalMasker masks postal codes: 94107 -> 94***
type postalMasker struct{}

// PostalMasker returns a masker for postal codes.
// Preserves the first two characters, which name a region, and the layout.
func PostalMasker() Masker {
	return &postalMasker{}
}

func (m *postalMasker) Mask(value string) string {
	if utf8.RuneCountInString(value) <= 2 {
		return maskAll(value)
	}

	var b strings.Builder
	kept := 0
	for _, r := range value {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			b.WriteRune(r)
		case kept < 2:
			b.WriteRune(r)
			kept++
		default:
			b.WriteByte('*')
		}
	}
	return b.String()
}

// addressMasker masks street addresses, keeping only punctuation and spacing.
type addressMasker struct{}

// AddressMasker returns a masker for address lines.
func AddressMasker() Masker {
	return &addressMasker{}
}

func (m *addressMasker) Mask(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return '*'
		}
		return r
	}, value)
}

// coordinateMasker masks coordinates to roughly 10km: 37.774929 -> 37.7*****
type coordinateMasker struct{}

// CoordinateMasker returns a masker for latitude and longitude values.
// Keeps the integer degrees and the first decimal.
func CoordinateMasker() Masker {
	return &coordinateMasker{}
}

func (m *coordinateMasker) Mask(value string) string {
	dot := strings.IndexByte(value, '.')
	if dot < 1 || dot+2 > len(value) {
		return maskAll(value)
	}
	keep := value[:dot+2]
	return keep + strings.Repeat("*", utf8.RuneCountInString(value[dot+2:]))
}

// FullMasker returns a masker that hides every character.
func FullMasker() Masker {
	return MaskerFunc(maskAll)
}

func maskAll(value string) string {
	return strings.Repeat("*", utf8.RuneCountInString(value))
}

// extractDigits returns only the digit characters from a string.
func extractDigits(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

// builtinMaskers returns the default masker registry.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskEmail:      EmailMasker(),
		MaskPhone:      PhoneMasker(),
		MaskName:       NameMasker(),
		MaskPostal:     PostalMasker(),
		MaskAddress:    AddressMasker(),
		MaskCoordinate: CoordinateMasker(),
		MaskFull:       FullMasker(),
	}
}

var defaultMaskers = builtinMaskers()

// MaskTypeForField picks a mask type from a member name, e.g. "buyer_email"
// masks as an email and "ship_postal_code" as a postal code.
func MaskTypeForField(name string) MaskType {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "email"):
		return MaskEmail
	case strings.Contains(name, "phone"):
		return MaskPhone
	case strings.Contains(name, "postal") || name == "zip":
		return MaskPostal
	case strings.Contains(name, "address"):
		return MaskAddress
	case name == "latitude" || name == "longitude":
		return MaskCoordinate
	case strings.Contains(name, "name") || strings.Contains(name, "company"):
		return MaskName
	default:
		return MaskFull
	}
}

// MaskerForField returns the builtin masker for a member name.
func MaskerForField(name string) Masker {
	return defaultMaskers[MaskTypeForField(name)]
}
