package validation

import (
	"regexp"
	"strings"
)

// rfcPattern is 3 letters (legal entity) or 4 letters (individual), a YYMMDD
// date and a 3-character homoclave. Ñ and & occur in real names.
var rfcPattern = regexp.MustCompile(`^[A-ZÑ&]{3,4}[0-9]{6}[A-Z0-9]{3}$`)

// ValidateRFC checks the format of a Registro Federal de Contribuyentes and
// the calendar date embedded in it. Input is trimmed and upper-cased first.
// Generic RFCs such as XAXX010101000 (domestic public) and XEXX010101000
// (foreign) pass because they satisfy both rules.
func ValidateRFC(value string) Result {
	rfc := strings.ToUpper(strings.TrimSpace(value))
	if rfc == "" {
		return fail("RFC is required")
	}
	if !rfcPattern.MatchString(rfc) {
		return fail("RFC %q does not match the expected format", rfc)
	}

	// The pattern guarantees 12 or 13 runes; the date follows the letters.
	runes := []rune(rfc)
	start := 3
	if len(runes) == 13 {
		start = 4
	}
	return checkEmbeddedDate("RFC", string(runes[start:start+6]))
}
