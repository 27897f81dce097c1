package compliance

import "strings"

// NormalizePhone converts US numbers to E.164 form (+1XXXXXXXXXX).
// Already-normalized input passes through unchanged, so the function is
// idempotent. Anything unrecognized is returned as-is for downstream
// validation to reject.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits
	default:
		return phone
	}
}
