// Package phone validates and corrects Brazilian mobile numbers against
// the WhatsApp numbering convention: +55, a two-digit area code, and a
// nine-digit subscriber number beginning with 9.
package phone

import (
	"regexp"
	"strings"
)

var (
	// validMobile matches the final form: +55 + area code + 9 + 8 digits.
	validMobile = regexp.MustCompile(`^\+55\d{2}9\d{8}$`)

	// legacyMobile matches the pre-migration form: +55 + area code + an
	// 8-digit subscriber number beginning with 8. These numbers gained a
	// leading 9 when Brazil moved to 9-digit mobile numbers.
	legacyMobile = regexp.MustCompile(`^\+55(\d{2})(8\d{7})$`)
)

// clean strips spaces, dashes, and parentheses from a raw phone number.
func clean(raw string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(raw)
}

// IsValidMobile reports whether the number, after cleaning, is a valid
// Brazilian mobile number in the +55DD9XXXXXXXX form.
func IsValidMobile(number string) bool {
	return validMobile.MatchString(clean(number))
}

// CorrectMobile returns the number in final mobile form where possible.
// Numbers already valid are returned cleaned; legacy 8-digit subscriber
// numbers beginning with 8 gain the ninth digit. Anything else is
// returned unchanged, so the function is the identity on uncorrectable
// input and a fixed point under reapplication. It never fails.
func CorrectMobile(number string) string {
	c := clean(number)
	if validMobile.MatchString(c) {
		return c
	}
	if m := legacyMobile.FindStringSubmatch(c); m != nil {
		return "+55" + m[1] + "9" + m[2]
	}
	return number
}
