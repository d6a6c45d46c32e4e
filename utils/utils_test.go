package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.in",
		"user+tag@sub.domain.org",
		"u_1-2@host.io",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missinguser.com",
		"user@",
		"user@domain",
		"user domain@example.com",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{
		"9876543210",
		"6123456789",
		"+919876543210",
		"919876543210",
		"09876543210",
		"98765 43210",
		"98765-43210",
	}
	for _, phone := range valid {
		if !ValidatePhoneNumber(phone) {
			t.Errorf("ValidatePhoneNumber(%q) = false, want true", phone)
		}
	}

	invalid := []string{
		"",
		"12345",
		"5876543210",  // leading digit below 6
		"98765432101", // 11 digits, no prefix
		"+1 555 0100",
		"abcdefghij",
	}
	for _, phone := range invalid {
		if ValidatePhoneNumber(phone) {
			t.Errorf("ValidatePhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestValidateSSN(t *testing.T) {
	tests := []struct {
		ssn  string
		want bool
	}{
		{"", true}, // optional field
		{"123-45-6789", true},
		{"000-00-0000", true},
		{"123456789", false},
		{"123-456-789", false},
		{"12-345-6789", false},
		{"abc-de-fghi", false},
	}
	for _, tt := range tests {
		if got := ValidateSSN(tt.ssn); got != tt.want {
			t.Errorf("ValidateSSN(%q) = %v, want %v", tt.ssn, got, tt.want)
		}
	}
}

func TestValidateBikeNumber(t *testing.T) {
	valid := []string{
		"MHAB1234",
		"mh ab 1234",
		"TNKA0001",
		"DLXY9999",
	}
	for _, plate := range valid {
		if err := ValidateBikeNumber(plate); err != nil {
			t.Errorf("ValidateBikeNumber(%q) = %v, want nil", plate, err)
		}
	}

	invalid := []string{
		"",
		"X",
		"XXAB1234",   // unknown state code
		"MHAB123",    // number too short
		"MHAB12345",  // number too long
		"MH1B1234",   // digit in series
		"MHABCD1234", // series too long
	}
	for _, plate := range invalid {
		if err := ValidateBikeNumber(plate); err == nil {
			t.Errorf("ValidateBikeNumber(%q) = nil, want error", plate)
		}
	}
}

func TestNormalizeBikeNumber(t *testing.T) {
	if got := NormalizeBikeNumber("mh ab 1234"); got != "MHAB1234" {
		t.Errorf("NormalizeBikeNumber() = %q, want MHAB1234", got)
	}
}

func TestIsLikelyBase64(t *testing.T) {
	if isLikelyBase64("short") {
		t.Error("short strings should never look like base64")
	}

	blob := ""
	for i := 0; i < 50; i++ {
		blob += "QUJDREVG"
	}
	if !isLikelyBase64(blob) {
		t.Error("long base64 blob not detected")
	}

	prose := ""
	for i := 0; i < 20; i++ {
		prose += "this is a plain sentence, with punctuation! "
	}
	if isLikelyBase64(prose) {
		t.Error("plain prose misdetected as base64")
	}
}
