package comprovante

import (
	"regexp"
	"strings"
)

// reservedChars are characters not allowed in filenames on common filesystems.
var reservedChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeName makes a payee name safe to use as a filename: every reserved
// character is removed and runs of whitespace collapse to single spaces.
// Idempotent.
func SanitizeName(name string) string {
	cleaned := reservedChars.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
