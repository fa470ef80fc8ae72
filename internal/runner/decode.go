package runner

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Decode converts captured process output to text. Ill-formed UTF-8 is
// replaced with U+FFFD and never reported as an error.
func Decode(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
