package enums

import "fmt"

// ContactKind distinguishes the channels a customer can be looked up by.
type ContactKind string

const (
	ContactKindPhone ContactKind = "phone"
	ContactKindEmail ContactKind = "email"
)

var validContactKinds = []ContactKind{
	ContactKindPhone,
	ContactKindEmail,
}

// String implements fmt.Stringer.
func (c ContactKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ContactKind.
func (c ContactKind) IsValid() bool {
	for _, candidate := range validContactKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContactKind converts raw input into a ContactKind.
func ParseContactKind(value string) (ContactKind, error) {
	for _, candidate := range validContactKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact kind %q", value)
}
