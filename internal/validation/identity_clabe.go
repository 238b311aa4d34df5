package validation

import (
	"strings"
)

// clabeWeights repeat over the first 17 digits of a CLABE.
var clabeWeights = [3]int{3, 7, 1}

// ValidateCLABE checks an 18-digit interbank account number: 3-digit bank,
// 3-digit branch plaza, 11-digit account, 1 check digit.
func ValidateCLABE(value string) Result {
	clabe := strings.TrimSpace(value)
	if clabe == "" {
		return fail("CLABE is required")
	}
	if len(clabe) != 18 || !allDigits(clabe) {
		return fail("CLABE must have exactly 18 digits")
	}

	bank := atoi3(clabe[0:3])
	if bank < 1 || bank > 999 {
		return fail("CLABE bank code %s is invalid", clabe[0:3])
	}

	want := clabeCheckDigit(clabe[:17])
	if got := int(clabe[17] - '0'); got != want {
		return fail("CLABE check digit %d is invalid, expected %d", got, want)
	}
	return pass()
}

// clabeCheckDigit computes the check digit for 17 leading digits:
// sum((d·w) mod 10) with weights 3,7,1 repeating, then (10 − sum mod 10) mod 10.
func clabeCheckDigit(digits string) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		sum += (d * clabeWeights[i%3]) % 10
	}
	return (10 - sum%10) % 10
}

func atoi3(s string) int {
	return int(s[0]-'0')*100 + int(s[1]-'0')*10 + int(s[2]-'0')
}
