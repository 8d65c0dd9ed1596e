// Package filename makes user-supplied upload names safe to use on disk.
package filename

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var windowsDevices = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM0": {}, "COM1": {}, "COM2": {}, "COM3": {}, "COM4": {},
	"COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT0": {}, "LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {},
	"LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Secure returns an ASCII-only version of name that cannot escape the
// directory it is joined to. Accented letters are decomposed and keep their
// base letter, path separators and whitespace become underscores, and any
// other character outside [A-Za-z0-9_.-] is dropped. The result may be empty.
func Secure(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name != "" {
		stem := strings.ToUpper(strings.SplitN(name, ".", 2)[0])
		if _, ok := windowsDevices[stem]; ok {
			name = "_" + name
		}
	}
	return name
}

// Extension returns the lower-cased text after the last dot, and false
// when name has no dot at all.
func Extension(name string) (string, bool) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", false
	}
	return strings.ToLower(name[i+1:]), true
}

// WithSuffix inserts "_n" before the extension: ("photo.png", 2) -> "photo_2.png".
func WithSuffix(name string, n int) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return fmt.Sprintf("%s_%d", name, n)
	}
	return fmt.Sprintf("%s_%d%s", name[:i], n, name[i:])
}

// IsPlain reports whether name is a single path element that Secure would
// leave unchanged.
func IsPlain(name string) bool {
	return name != "" && Secure(name) == name
}
