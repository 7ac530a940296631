package reputation

import "testing"

func TestIsPlausibleAddressAcceptsRealLiterals(t *testing.T) {
	cases := []string{
		"8.8.8.8",
		"192.0.2.255",
		"203.0.113.7",
		"::1",
		"2001:db8::1",
		"2001:db8:0:0:0:0:2:1",
		"fe80::1cc0:3e8c:119f:c2e1",
	}
	for _, input := range cases {
		if !IsPlausibleAddress(input) {
			t.Errorf("expected %q to be accepted", input)
		}
	}
}

func TestIsPlausibleAddressRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"hello world",
		"999.999.999.999",
		"256.1.1.1",
		"1.2.3",
		"1.2.3.4.5",
		"1.2.3.4:80",
		"8.8.8.8 ",
		" 8.8.8.8",
		"8.8.8.8\t",
		"google.com",
		"2001:zz8::1",
		"1:2",
		"...",
	}
	for _, input := range cases {
		if IsPlausibleAddress(input) {
			t.Errorf("expected %q to be rejected", input)
		}
	}
}

// Short numeric forms like "1.2.3" are valid shorthand to some lenient
// parsers but the API rejects them; the dot count turns them away before
// any parse attempt.
func TestIsPlausibleAddressRejectsShorthandBeforeParsing(t *testing.T) {
	for _, input := range []string{"127.1", "10.0.1", "1"} {
		if IsPlausibleAddress(input) {
			t.Errorf("expected shorthand %q to be rejected", input)
		}
	}
}
