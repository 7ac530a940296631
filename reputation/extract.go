package reputation

import (
	"regexp"
	"strconv"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

// Field extraction works on the raw response text instead of a deserialized
// document. The check endpoint's envelope has grown fields over the years;
// matching just the ones we display keeps the tool indifferent to the rest
// of the schema.

var (
	patternMu       sync.Mutex
	stringPatterns  = make(map[string]*regexp.Regexp)
	integerPatterns = make(map[string]*regexp.Regexp)
)

func stringPattern(key string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	re, ok := stringPatterns[key]
	if !ok {
		re = regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"((?:[^"\\]|\\.)*)"`)
		stringPatterns[key] = re
	}
	return re
}

func integerPattern(key string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	re, ok := integerPatterns[key]
	if !ok {
		re = regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*(-?[0-9]+)`)
		integerPatterns[key] = re
	}
	return re
}

// ExtractString returns the first string value stored under key anywhere in
// body, with standard JSON escapes decoded. The second result is false when
// the key is missing or its value is not a quoted string.
func ExtractString(body, key string) (string, bool) {
	m := stringPattern(key).FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return decodeEscapes(m[1]), true
}

// ExtractInteger returns the first bare integer stored under key anywhere in
// body. Quoted numbers, nulls, and anything else that is not an integer
// literal count as absent.
func ExtractInteger(body, key string) (int, bool) {
	m := integerPattern(key).FindStringSubmatch(body)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// decodeEscapes resolves the JSON escape sequences the API is known to emit
// in ISP and usage type values. Unknown escapes pass through untouched so a
// schema surprise degrades to odd display text rather than a dropped field.
func decodeEscapes(s string) string {
	backslash := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			backslash = i
			break
		}
	}
	if backslash == -1 {
		return s
	}

	var b []byte
	b = append(b, s[:backslash]...)
	for i := backslash; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b = append(b, c)
			i++
			continue
		}
		switch s[i+1] {
		case '"':
			b = append(b, '"')
		case '\\':
			b = append(b, '\\')
		case '/':
			b = append(b, '/')
		case 'n':
			b = append(b, '\n')
		case 't':
			b = append(b, '\t')
		case 'r':
			b = append(b, '\r')
		case 'b':
			b = append(b, '\b')
		case 'f':
			b = append(b, '\f')
		case 'u':
			if r, size, ok := decodeUnicodeEscape(s[i:]); ok {
				b = utf8.AppendRune(b, r)
				i += size
				continue
			}
			b = append(b, '\\', 'u')
		default:
			b = append(b, '\\', s[i+1])
		}
		i += 2
	}
	return string(b)
}

// decodeUnicodeEscape reads a \uXXXX sequence at the start of s, combining
// surrogate pairs into their single code point. size is the number of input
// bytes consumed.
func decodeUnicodeEscape(s string) (r rune, size int, ok bool) {
	if len(s) < 6 || s[0] != '\\' || s[1] != 'u' {
		return 0, 0, false
	}
	hi, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	r = rune(hi)
	if !utf16.IsSurrogate(r) {
		return r, 6, true
	}
	if len(s) >= 12 && s[6] == '\\' && s[7] == 'u' {
		lo, err := strconv.ParseUint(s[8:12], 16, 32)
		if err == nil {
			if combined := utf16.DecodeRune(r, rune(lo)); combined != utf8.RuneError {
				return combined, 12, true
			}
		}
	}
	// Unpaired surrogate: emit the replacement character and move on.
	return utf8.RuneError, 6, true
}
