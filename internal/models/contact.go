package models

import "strings"

// MaxContacts limits how many emergency contacts a user may register.
const MaxContacts = 3

// Contact is one emergency alert recipient.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// NormalizePhone strips every non-digit character from a raw phone input.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether the contact has a non-empty name and a 10-digit phone.
func (c Contact) Valid() bool {
	return strings.TrimSpace(c.Name) != "" && len(NormalizePhone(c.Phone)) == 10
}

// Normalized returns a copy with trimmed name and digits-only phone.
func (c Contact) Normalized() Contact {
	return Contact{Name: strings.TrimSpace(c.Name), Phone: NormalizePhone(c.Phone)}
}

// ValidContacts filters and normalizes a contact list. Invalid entries are
// dropped, the result is capped at MaxContacts.
func ValidContacts(contacts []Contact) []Contact {
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if !c.Valid() {
			continue
		}
		out = append(out, c.Normalized())
		if len(out) == MaxContacts {
			break
		}
	}
	return out
}
