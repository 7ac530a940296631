package reputation

import (
	"net/netip"
	"strings"
)

// IsPlausibleAddress reports whether text is worth spending a network call
// on. A cheap punctuation count rejects obvious garbage first: an IPv4
// literal needs at least three dots, an IPv6 literal at least two colons.
// Whatever survives must then parse as a real address. The check runs on
// the input exactly as typed; surrounding whitespace fails it.
func IsPlausibleAddress(text string) bool {
	if strings.Count(text, ".") < 3 && strings.Count(text, ":") < 2 {
		return false
	}
	_, err := netip.ParseAddr(text)
	return err == nil
}
