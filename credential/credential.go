// Package credential loads the AbuseIPDB API key from the fixed-name file
// kept alongside the executable.
package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// FileName is the only file name the loader ever reads. Keeping the name
// fixed means a key can never end up in a shell history or process listing.
const FileName = "abuseipdbkey.config"

// DefaultDir returns the directory searched for the key file: the directory
// holding the running executable, or the working directory when that cannot
// be resolved.
func DefaultDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// Load reads the key file under dir and enforces its content contract: the
// bare key and nothing else. Any whitespace in the file, including a
// trailing newline, is an error rather than something to silently repair.
func Load(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read key file %s: %w", path, err)
	}
	key := string(data)
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("key file %s is empty", path)
	}
	if strings.ContainsFunc(key, unicode.IsSpace) {
		return "", fmt.Errorf("key file %s contains whitespace; it must hold the bare key only", path)
	}
	return key, nil
}

// Guidance is the operator-facing explanation printed when Load fails.
func Guidance() string {
	return strings.Join([]string{
		"An AbuseIPDB API key is required.",
		"",
		"Create a file named " + FileName + " in the application directory",
		"containing only the key itself: no spaces, no line breaks.",
		"Keys are issued at https://www.abuseipdb.com/account/api",
	}, "\n")
}
