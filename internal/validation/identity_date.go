package validation

import (
	"time"
)

// pivotYear maps a two-digit year to a full year: 00–30 are 2000s, 31–99
// are 1900s.
func pivotYear(yy int) int {
	if yy <= 30 {
		return 2000 + yy
	}
	return 1900 + yy
}

// checkEmbeddedDate validates a YYMMDD block embedded in an identifier. label
// prefixes the error message ("RFC", "CURP").
func checkEmbeddedDate(label, yymmdd string) Result {
	if len(yymmdd) != 6 || !allDigits(yymmdd) {
		return fail("%s date must be six digits", label)
	}
	yy := atoi2(yymmdd[0:2])
	mm := atoi2(yymmdd[2:4])
	dd := atoi2(yymmdd[4:6])

	if mm < 1 || mm > 12 {
		return fail("%s contains an invalid month %02d", label, mm)
	}
	if dd < 1 || dd > 31 {
		return fail("%s contains an invalid day %02d", label, dd)
	}

	year := pivotYear(yy)
	t := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(mm) || t.Day() != dd {
		return fail("%s contains a date that does not exist: %04d-%02d-%02d", label, year, mm, dd)
	}
	return pass()
}

func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isUpperASCII(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
