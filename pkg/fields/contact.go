package fields

import (
	"regexp"
	"strings"
)

const UnknownName = "Unknown"

var phonePart = regexp.MustCompile(`^(\d{10}|\d+ \d+)$`)

type Contact struct {
	Name    string
	Address string
	Phone   string
}

// ParseContact splits "Name, Address..., 9876543210". The first part made of
// exactly ten digits (one inner space allowed) is the phone. Without a phone
// the result is Defaulted and Phone is empty.
func ParseContact(s string) Result[Contact] {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return defaulted(Contact{})
	}

	at := -1
	var phone string
	for i, p := range parts {
		if digits, ok := phoneDigits(p); ok {
			at, phone = i, digits
			break
		}
	}

	switch {
	case at < 0:
		return defaulted(Contact{
			Name:    parts[0],
			Address: strings.Join(parts[1:], ", "),
		})
	case at == 0:
		// phone leads: the next part is the name
		c := Contact{Name: UnknownName, Phone: phone}
		if len(parts) > 1 {
			c.Name = parts[1]
			c.Address = strings.Join(parts[2:], ", ")
		}
		return parsed(c)
	default:
		address := append([]string{}, parts[1:at]...)
		address = append(address, parts[at+1:]...)
		return parsed(Contact{
			Name:    parts[0],
			Address: strings.Join(address, ", "),
			Phone:   phone,
		})
	}
}

func phoneDigits(s string) (string, bool) {
	if !phonePart.MatchString(s) {
		return "", false
	}
	digits := strings.ReplaceAll(s, " ", "")
	return digits, len(digits) == 10
}
