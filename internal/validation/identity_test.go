package validation

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type IdentitySuite struct {
	suite.Suite
}

func TestIdentitySuite(t *testing.T) {
	suite.Run(t, new(IdentitySuite))
}

func (s *IdentitySuite) TestRFC() {
	s.Run("accepts well-formed RFCs", func() {
		for _, rfc := range []string{
			"XAXX010101000", // generic domestic
			"XEXX010101000", // generic foreign
			"GODE561231GR8", // individual, 13 characters
			"ABC680524P76",  // legal entity, 12 characters
			"ÑAB010101AB1",  // Ñ in the name block
			"&AB010101AB1",  // & in the name block
			"ABC000229P76",  // 2000 was a leap year
			" xaxx010101000 ",
		} {
			res := ValidateRFC(rfc)
			s.True(res.Valid, "%q: %s", rfc, res.Error)
			s.Empty(res.Error)
		}
	})

	s.Run("rejects malformed RFCs", func() {
		tests := []struct {
			input   string
			errPart string
		}{
			{"", "RFC is required"},
			{"   ", "RFC is required"},
			{"ABC", "expected format"},
			{"ABC680524P7-", "expected format"},
			{"AB1680524P76", "expected format"},
			{"ABCDE680524P76", "expected format"},
			{"ABC681324P76", "invalid month 13"},
			{"ABC680024P76", "invalid month 00"},
			{"ABC680532P76", "invalid day 32"},
			{"ABC680500P76", "invalid day 00"},
			{"ABC010229P76", "does not exist: 2001-02-29"},
			{"GODE560231GR8", "does not exist: 1956-02-31"},
		}
		for _, tt := range tests {
			res := ValidateRFC(tt.input)
			s.False(res.Valid, tt.input)
			s.Contains(res.Error, tt.errPart, tt.input)
		}
	})

	s.Run("pivots two-digit years at 30", func() {
		// 28 is 2028 (leap), 30 is 2030 (not leap), 32 is 1932 (leap)
		s.True(ValidateRFC("ABC280229P76").Valid)  // 2028 leap
		s.False(ValidateRFC("ABC300229P76").Valid) // 2030 not leap
		s.True(ValidateRFC("ABC320229P76").Valid)  // 1932 leap
	})
}

func (s *IdentitySuite) TestCURP() {
	s.Run("accepts well-formed CURPs", func() {
		for _, curp := range []string{
			"GODE561231HDFRRN09",
			"MAPA800101MJCRRN05",
			"GODE561231HNERRN09", // born abroad
			"gode561231hdfrrna9",
		} {
			res := ValidateCURP(curp)
			s.True(res.Valid, "%q: %s", curp, res.Error)
		}
	})

	s.Run("rejects each malformed component", func() {
		tests := []struct {
			input   string
			errPart string
		}{
			{"", "CURP is required"},
			{"GODE561231HDFRRN0", "exactly 18 characters"},
			{"GODE561231HDFRRN091", "exactly 18 characters"},
			{"GODÑ61231HDFRRN09X", "exactly 18 characters"},
			{"G0DE561231HDFRRN09", "four letters"},
			{"GODE569931HDFRRN09", "invalid month 99"},
			{"GODE561232HDFRRN09", "invalid day 32"},
			{"GODE010229HDFRRN09", "does not exist"},
			{"GODE56A231HDFRRN09", "six digits"},
			{"GODE561231XDFRRN09", "sex must be H or M"},
			{"GODE561231HZZRRN09", `state code "ZZ"`},
			{"GODE561231HDFARN09", "internal consonants"},
			{"GODE561231HDF1RN09", "internal consonants"},
			{"GODE561231HDFRRN-9", "homoclave"},
			{"GODE561231HDFRRN0A", "check digit"},
		}
		for _, tt := range tests {
			res := ValidateCURP(tt.input)
			s.False(res.Valid, tt.input)
			s.Contains(res.Error, tt.errPart, tt.input)
		}
	})
}

func (s *IdentitySuite) TestCLABE() {
	s.Run("accepts a valid CLABE", func() {
		res := ValidateCLABE("032180000118359719")
		s.True(res.Valid, res.Error)
		s.True(ValidateCLABE(" 032180000118359719 ").Valid)
	})

	s.Run("rejects malformed CLABEs", func() {
		tests := []struct {
			input   string
			errPart string
		}{
			{"", "CLABE is required"},
			{"03218000011835971", "exactly 18 digits"},
			{"0321800001183597190", "exactly 18 digits"},
			{"03218000011835971A", "exactly 18 digits"},
			{"032 80000118359719", "exactly 18 digits"},
			{"032180000118359718", "expected 9"},
		}
		for _, tt := range tests {
			res := ValidateCLABE(tt.input)
			s.False(res.Valid, tt.input)
			s.Contains(res.Error, tt.errPart, tt.input)
		}
	})

	s.Run("rejects bank code 000", func() {
		prefix := "00018000011835971"
		clabe := fmt.Sprintf("%s%d", prefix, clabeCheckDigit(prefix))
		res := ValidateCLABE(clabe)
		s.False(res.Valid)
		s.Contains(res.Error, "bank code 000")
	})
}

// TestCLABE_FinalDigitProperty: for any 17-digit prefix with a real bank code,
// exactly one final digit yields a valid CLABE.
func TestCLABE_FinalDigitProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 7))
	for i := 0; i < 300; i++ {
		var b strings.Builder
		fmt.Fprintf(&b, "%03d", 1+r.IntN(999))
		for j := 0; j < 14; j++ {
			b.WriteByte(byte('0' + r.IntN(10)))
		}
		prefix := b.String()

		validDigits := 0
		for d := 0; d <= 9; d++ {
			res := ValidateCLABE(fmt.Sprintf("%s%d", prefix, d))
			if res.Valid {
				validDigits++
				assert.Equal(t, clabeCheckDigit(prefix), d, prefix)
			}
		}
		assert.Equal(t, 1, validDigits, prefix)
	}
}

func FuzzValidateRFC(f *testing.F) {
	f.Add("XAXX010101000")
	f.Add("ABC680524P76")
	f.Add("ÑAB010101AB1")
	f.Add("")
	f.Add("\x00\xff")

	f.Fuzz(func(t *testing.T, input string) {
		res := ValidateRFC(input)
		if res.Valid {
			n := utf8.RuneCountInString(strings.TrimSpace(input))
			if n != 12 && n != 13 {
				t.Fatalf("accepted RFC %q with %d characters", input, n)
			}
		} else if res.Error == "" {
			t.Fatalf("rejected %q without an error", input)
		}
	})
}

func FuzzValidateCURP(f *testing.F) {
	f.Add("GODE561231HDFRRN09")
	f.Add("GODE569931HDFRRN09")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		res := ValidateCURP(input)
		if res.Valid && len(strings.TrimSpace(input)) != 18 {
			t.Fatalf("accepted CURP %q", input)
		}
	})
}

func FuzzValidateCLABE(f *testing.F) {
	f.Add("032180000118359719")
	f.Add("000000000000000000")
	f.Add("abc")

	f.Fuzz(func(t *testing.T, input string) {
		res := ValidateCLABE(input)
		if !res.Valid {
			return
		}
		clabe := strings.TrimSpace(input)
		if len(clabe) != 18 || !allDigits(clabe) {
			t.Fatalf("accepted CLABE %q", input)
		}
		if int(clabe[17]-'0') != clabeCheckDigit(clabe[:17]) {
			t.Fatalf("accepted CLABE %q with wrong check digit", input)
		}
	})
}
