package phone

import "testing"

func TestIsValidMobile(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{"valid nine digit", "+5511988887777", true},
		{"valid with separators", "+55 (11) 98888-7777", true},
		{"legacy eight digit", "+551188887777", false},
		{"missing country code", "11988887777", false},
		{"wrong country code", "+5411988887777", false},
		{"ninth digit not nine", "+5511788887777", false},
		{"too long", "+55119888877771", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidMobile(tt.number); got != tt.want {
				t.Errorf("IsValidMobile(%q) = %v, want %v", tt.number, got, tt.want)
			}
		})
	}
}

func TestCorrectMobile(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   string
	}{
		{"already valid", "+5511988887777", "+5511988887777"},
		{"valid with separators is cleaned", "+55 (11) 98888-7777", "+5511988887777"},
		{"legacy eight digit gains ninth", "+551188887777", "+5511988887777"},
		{"legacy with separators", "+55 11 8888-7777", "+5511988887777"},
		{"uncorrectable landline unchanged", "+551133334444", "+551133334444"},
		{"uncorrectable garbage unchanged", "not a number", "not a number"},
		{"no country code unchanged", "1188887777", "1188887777"},
		{"empty unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CorrectMobile(tt.number); got != tt.want {
				t.Errorf("CorrectMobile(%q) = %q, want %q", tt.number, got, tt.want)
			}
		})
	}
}

// Corrected numbers must not change under reapplication; the filter
// engine relies on this when criteria are applied twice.
func TestCorrectMobileFixedPoint(t *testing.T) {
	inputs := []string{
		"+5511988887777",
		"+551188887777",
		"+55 11 8888-7777",
		"+551133334444",
		"garbage",
		"",
	}
	for _, in := range inputs {
		once := CorrectMobile(in)
		twice := CorrectMobile(once)
		if once != twice {
			t.Errorf("CorrectMobile not a fixed point for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCorrectedNumberIsValid(t *testing.T) {
	if !IsValidMobile(CorrectMobile("+551188887777")) {
		t.Error("corrected legacy number should validate")
	}
	if IsValidMobile(CorrectMobile("+551133334444")) {
		t.Error("uncorrectable number should stay invalid")
	}
}
