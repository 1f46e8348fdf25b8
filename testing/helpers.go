// Package testing provides test utilities for sensitive.
package testing

import (
	"testing"

	"github.com/zoobzio/sensitive"
)

// Fixture key material. Never use these outside tests.
const (
	MasterKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	RootKeyHex   = "0123456789abcdef0123456789abcdef"
	RootVersion  = "0001"
)

// RootKeys returns the single fixture root key.
func RootKeys() map[string]string {
	return map[string]string{RootVersion: RootKeyHex}
}

// TestSealer returns a Sealer initialized with the fixture keys.
func TestSealer(tb testing.TB) *sensitive.Sealer {
	tb.Helper()
	s := sensitive.NewSealer()
	if err := s.Init(MasterKeyHex, RootKeys()); err != nil {
		tb.Fatalf("Init() error: %v", err)
	}
	return s
}

// TestWalker returns a Walker over TestSealer.
func TestWalker(tb testing.TB, opts ...sensitive.WalkerOption) *sensitive.Walker {
	tb.Helper()
	return sensitive.NewWalker(TestSealer(tb), opts...)
}

// MustParseJSON parses a JSON document or fails the test.
func MustParseJSON(tb testing.TB, doc string) sensitive.Value {
	tb.Helper()
	v, err := sensitive.ParseJSON([]byte(doc))
	if err != nil {
		tb.Fatalf("ParseJSON(%q) error: %v", doc, err)
	}
	return v
}

// Vector is an envelope produced by another implementation of the wire
// format under the fixture keys.
type Vector struct {
	Name      string
	Plaintext string
	Envelope  string
}

// Vectors returns envelopes that must open to their plaintext under the
// fixture keys.
func Vectors() []Vector {
	return []Vector{
		{
			Name:      "ascii",
			Plaintext: "Hello, World!",
			Envelope:  "0001^wKOCCRx4+rg2SEdxXXxXUvppZGv8v7cfCn05fK+IofGM73bHwEvZG235ocHfsA64XhUnIzgQqLWRkmmr3YfKfw==^dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f^x1QVsjF9cL09/Fog3Jnbth0+SJgZ87AaAqSdItkt13M=",
		},
		{
			Name:      "newline",
			Plaintext: "\n",
			Envelope:  "0001^43ZKRv9qeDuQfn9Osaa5jOaOjDarCOR0irf0b7a+Neuuc2ISpZAGXGtiBBbusxjwHkgJ0EpPXWeqTQZnM/24Ug==^01ba4719c80b6fe911b091a7c05124b64eeece964e09c058ef8f9805daca546b^tFCfisC6ZSxqMiAqwUps9ZLIabVD3hgxVpjCYqnfedQ=",
		},
		{
			Name:      "tab",
			Plaintext: "\t",
			Envelope:  "0001^1bZegEKH5PEKEmpZ/xbbn0FcwXnougiQgVvPtN2H1ZtX13MXpIlOnUhYCzgwRraxBTmKyhBAZ4cN4iRJmsWv1Q==^2b4c342f5433ebe591a1da77e013d1b72475562d48578dca8b84bac6651c3cb9^jDddN9UIB5cTkVs8zHj2NTcsAu6WqyLs6NveyoSG+bA=",
		},
		{
			Name:      "chinese",
			Plaintext: "这是中文测试",
			Envelope:  "0001^eA7RoO08Laew/+NsViEAQ9XCpYH3+KUyiie/Sm1QIu6/+IJWtoIA0Gl7UXdArdTDLK1+RsQIU4ZsoAXW/Tq8IQ==^cd78f6be8972066d2c4eb873fcfe87be7edb8bdf918b83bec09a47e7ed255f36^aFLecSb6NuJjj+fpR6fs5pQEI+9p1KPPMF/Wsh4k6w+A3zXwbUAFQs7oddSSDFa+",
		},
		{
			Name:      "japanese",
			Plaintext: "これは日本語です",
			Envelope:  "0001^oJKIrrIHYSWnv00ipCb9E1K94g6P06KfutrPKzLmmw2mGvC4p16DymLxpUrUkV0ZZjEIcdxyyJRrKXZKl1GZTA==^3a57bd94b9bcda801052f149337366d3ec00555c67efaf5d355c80d347678061^OeYz+rsHmuBHzxG8YdvSt3us3YM3EVjsZtiAYXWhl4Y8BMudOOIWxnQj5LVTkzWj",
		},
		{
			Name:      "json text",
			Plaintext: `{"key": "value", "chinese": "中文"}`,
			Envelope:  "0001^JZC9vHiiDtPAMZf/9XW9NOkgyuxu0xDkSRc+mYkHAtDKKzKeGxBLs8eeATSZ+XBBOE64OKokmM0VY6Cp2QUAfA==^4fc0f4fa0d02ef6da9bdd535857bb258856e3547cbf9cbfc07d33424ac8757b3^LLHe21lfhIz4z3Pe/BqjftrHekz/LKiLmXUxqsU0JZrlBO2EcyFlpoem8zZsdZ1/wJtYq3OsJaQXBI8rXRcDEg==",
		},
	}
}

// SimpleUser is a test type with no tags.
type SimpleUser struct {
	ID   string `json:"id" yaml:"id" msgpack:"id" bson:"id"`
	Name string `json:"name" yaml:"name" msgpack:"name" bson:"name"`
}

// Clone implements Cloner[SimpleUser].
func (u SimpleUser) Clone() SimpleUser { return u }

// Address is a nested test type.
type Address struct {
	Line1  string `json:"address1" yaml:"address1" msgpack:"address1" bson:"address1" sensitive:"encrypt" mask:"address"`
	Postal string `json:"zip" yaml:"zip" msgpack:"zip" bson:"zip" sensitive:"encrypt" mask:"postal"`
	City   string `json:"city" yaml:"city" msgpack:"city" bson:"city"`
}

// Customer is a test type exercising every taggable field shape.
type Customer struct {
	ID      string            `json:"id" yaml:"id" msgpack:"id" bson:"id"`
	Name    string            `json:"name" yaml:"name" msgpack:"name" bson:"name" sensitive:"encrypt" mask:"name"`
	Email   string            `json:"email" yaml:"email" msgpack:"email" bson:"email" sensitive:"lower" mask:"email"`
	Phone   *string           `json:"phone,omitempty" yaml:"phone,omitempty" msgpack:"phone,omitempty" bson:"phone,omitempty" sensitive:"encrypt" mask:"phone"`
	Aliases []string          `json:"aliases" yaml:"aliases" msgpack:"aliases" bson:"aliases" sensitive:"encrypt"`
	Notes   map[string]string `json:"notes" yaml:"notes" msgpack:"notes" bson:"notes" sensitive:"encrypt"`
	Home    Address           `json:"home" yaml:"home" msgpack:"home" bson:"home"`
	Work    *Address          `json:"work,omitempty" yaml:"work,omitempty" msgpack:"work,omitempty" bson:"work,omitempty"`
}

// Clone implements Cloner[Customer].
func (c Customer) Clone() Customer {
	out := c
	if c.Phone != nil {
		p := *c.Phone
		out.Phone = &p
	}
	if c.Aliases != nil {
		out.Aliases = append([]string(nil), c.Aliases...)
	}
	if c.Notes != nil {
		out.Notes = make(map[string]string, len(c.Notes))
		for k, v := range c.Notes {
			out.Notes[k] = v
		}
	}
	if c.Work != nil {
		w := *c.Work
		out.Work = &w
	}
	return out
}
