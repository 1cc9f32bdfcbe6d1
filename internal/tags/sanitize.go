package tags

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Sanitize coerces a tag value into a single writable comment line. Invalid
// UTF-8 bytes are dropped rather than replaced, matching the lossy decode
// behavior existing libraries were tagged with. The result is NFC-normalized
// and newline-free.
func Sanitize(value string) string {
	value = strings.ToValidUTF8(value, "")
	value = norm.NFC.String(value)
	value = strings.ReplaceAll(value, "\r\n", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.TrimSpace(value)
}
