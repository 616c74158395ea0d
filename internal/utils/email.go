package utils

import "strings"

// FormatAddress reduces a display name and address into the canonical
// "Display Name <address>" form, or the bare address when no name exists.
func FormatAddress(name, address string) string {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return address
	}
	return name + " <" + address + ">"
}

// SplitAddressList splits a comma separated header value into trimmed parts.
func SplitAddressList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
