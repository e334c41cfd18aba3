package loyalty

import "strings"

// NormalizePhone canonicalizes a raw sender address into a stable phone key.
// It strips channel suffixes such as "@s.whatsapp.net" and every non-digit
// character except a leading "+". The function is idempotent and never fails:
// malformed input still maps to some stable key, so repeated messages from
// the same malformed source resolve to the same customer.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, '@'); i >= 0 {
		s = s[:i]
	}

	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteByte('+')
		}
	}
	return b.String()
}
