package sensitive

import "strings"

// defaultFieldNames is the allow-list shared by every implementation of the
// wire format. Changing it changes which stored fields are readable.
var defaultFieldNames = []string{
	"address1", "address2", "zip", "phone", "name", "first_name", "last_name", "company",
	"latitude", "longitude", "email", "company_name",
	"caller_name", "caller_phone", "recipient_name", "recipient_phone", "call_details",
	"buyer_name", "buyer_email", "buyer_phone_number", "buyer_postal_code",
	"ship_address_1", "ship_address_2", "ship_postal_code", "ship_phone_number",
}

// FieldSet is a case-insensitive allow-list of member names whose values are
// sensitive. The zero FieldSet contains nothing.
type FieldSet struct {
	names map[string]struct{}
	order []string
}

// NewFieldSet builds a FieldSet. Names are lower-cased; empty names and
// duplicates are dropped.
func NewFieldSet(names ...string) FieldSet {
	fs := FieldSet{
		names: make(map[string]struct{}, len(names)),
		order: make([]string, 0, len(names)),
	}
	for _, name := range names {
		fs.add(name)
	}
	return fs
}

// DefaultFields returns the standard PII allow-list.
func DefaultFields() FieldSet {
	return NewFieldSet(defaultFieldNames...)
}

func (fs *FieldSet) add(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	if _, ok := fs.names[name]; ok {
		return
	}
	fs.names[name] = struct{}{}
	fs.order = append(fs.order, name)
}

// With returns a new FieldSet holding fs plus names.
func (fs FieldSet) With(names ...string) FieldSet {
	out := NewFieldSet(fs.order...)
	for _, name := range names {
		out.add(name)
	}
	return out
}

// Contains reports whether name is in the set, ignoring case.
func (fs FieldSet) Contains(name string) bool {
	if len(fs.names) == 0 {
		return false
	}
	_, ok := fs.names[strings.ToLower(name)]
	return ok
}

// Names returns the names in insertion order.
func (fs FieldSet) Names() []string {
	return append([]string(nil), fs.order...)
}

// Len returns the number of names.
func (fs FieldSet) Len() int {
	return len(fs.order)
}
