package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateReferralCode builds a code from a 3-letter email prefix, a base-36
// millisecond timestamp, and a 3-character random suffix. Codes are not
// guaranteed unique; the unique index on sales_referral_codes is the actual
// guard, and callers retry with a fresh code on collision.
func GenerateReferralCode(email string) string {
	prefix := []rune(strings.ToUpper(email))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)

	suffix := make([]byte, 3)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Upper))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a timestamp-derived character.
			suffix[i] = base36Upper[time.Now().UnixNano()%int64(len(base36Upper))]
			continue
		}
		suffix[i] = base36Upper[n.Int64()]
	}

	return string(prefix) + timestamp + string(suffix)
}
