package validation

import (
	"strings"
)

// curpStates are the entity codes a CURP may carry: the 32 federal entities
// plus NE for people born abroad.
var curpStates = map[string]struct{}{
	"AS": {}, "BC": {}, "BS": {}, "CC": {}, "CL": {}, "CM": {}, "CS": {}, "CH": {},
	"DF": {}, "DG": {}, "GT": {}, "GR": {}, "HG": {}, "JC": {}, "MC": {}, "MN": {},
	"MS": {}, "NT": {}, "NL": {}, "OC": {}, "PL": {}, "QT": {}, "QR": {}, "SP": {},
	"SL": {}, "SR": {}, "TC": {}, "TS": {}, "TL": {}, "VZ": {}, "YN": {}, "ZS": {},
	"NE": {},
}

// ValidateCURP checks the structure of a Clave Única de Registro de Población:
//
//	positions  1-4   letters
//	           5-10  birth date YYMMDD
//	           11    sex, H or M
//	           12-13 entity code
//	           14-16 internal consonants
//	           17    homoclave, letter or digit
//	           18    check digit
//
// Each failure names the component at fault.
func ValidateCURP(value string) Result {
	curp := asciiUpper(strings.TrimSpace(value))
	if curp == "" {
		return fail("CURP is required")
	}
	if len(curp) != 18 || len([]rune(curp)) != 18 {
		return fail("CURP must have exactly 18 characters")
	}

	for i := 0; i < 4; i++ {
		if !isUpperASCII(curp[i]) {
			return fail("CURP must start with four letters")
		}
	}
	if res := checkEmbeddedDate("CURP", curp[4:10]); !res.Valid {
		return res
	}
	if sex := curp[10]; sex != 'H' && sex != 'M' {
		return fail("CURP sex must be H or M, got %q", string(sex))
	}
	if _, ok := curpStates[curp[11:13]]; !ok {
		return fail("CURP state code %q is not recognized", curp[11:13])
	}
	for i := 13; i < 16; i++ {
		if !isCURPConsonant(curp[i]) {
			return fail("CURP internal consonants %q are invalid", curp[13:16])
		}
	}
	if h := curp[16]; !isUpperASCII(h) && !isDigit(h) {
		return fail("CURP homoclave must be a letter or digit")
	}
	if !isDigit(curp[17]) {
		return fail("CURP check digit must be a digit")
	}
	return pass()
}

// isCURPConsonant accepts A–Z except the vowels. Ñ is outside ASCII and never
// reaches here as a single byte.
func isCURPConsonant(c byte) bool {
	if !isUpperASCII(c) {
		return false
	}
	switch c {
	case 'A', 'E', 'I', 'O', 'U':
		return false
	}
	return true
}

// asciiUpper upper-cases a–z only, so multi-byte runes that fold to ASCII
// (ı, ſ) cannot sneak past the length check.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
