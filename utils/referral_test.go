package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode("samantha@valygo.io")

	assert.True(t, strings.HasPrefix(code, "SAM"), "code %q should carry the email prefix", code)
	assert.Greater(t, len(code), 6)

	// 3-letter prefix and 3-char suffix around a base-36 timestamp.
	for _, c := range code[len(code)-3:] {
		assert.Contains(t, base36Upper, string(c))
	}
}

func TestGenerateReferralCodeMultibytePrefix(t *testing.T) {
	code := GenerateReferralCode("édouard@valygo.io")

	assert.True(t, utf8.ValidString(code), "code %q must be valid UTF-8", code)
	assert.True(t, strings.HasPrefix(code, "ÉDO"))
}

func TestGenerateReferralCodeShortEmail(t *testing.T) {
	code := GenerateReferralCode("ab")
	assert.True(t, strings.HasPrefix(code, "AB"))
}

func TestGenerateReferralCodeRandomSuffix(t *testing.T) {
	// Same email in a tight loop still produces distinct codes thanks to the
	// random suffix.
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateReferralCode("same@valygo.io")] = true
	}
	assert.Greater(t, len(seen), 1)
}
