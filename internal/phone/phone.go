// Package phone normalizes human-entered Egyptian mobile numbers into one
// canonical form.
//
// A phone number is simultaneously a contact channel, a de-duplication key,
// and the informal login credential for post ownership, so every comparison
// in the system goes through Normalize. The canonical form is "+20" followed
// by the nine-plus-one local digits (e.g. "+201012345678").
//
// Normalize is total and idempotent: it never fails, and feeding its output
// back in returns the same string. Stored values are re-normalized at every
// comparison because historical records were written under a looser rule.
package phone

import (
	"strings"

	pstrings "teamup/pkg/platform/strings"
)

const (
	// CountryCode is the only dialing code this deployment supports.
	CountryCode = "20"

	// MobilePrefix is the canonical prefix of a supported mobile number.
	MobilePrefix = "+201"

	// exitPrefix is the international exit spelling of the country code.
	exitPrefix = "0020"
)

// Normalize maps any user-entered spelling of a local mobile number to the
// canonical "+20XXXXXXXXXX" form. Ordered rules, first match wins:
//
//  1. "0020..."                  international exit prefix, rewrite to "+20..."
//  2. "+201..."                  already canonical
//  3. "201..." with 12 digits    missing "+" only
//  4. "01..." with 11 digits     local trunk form, drop the "0"
//  5. "1..." with 10 digits      bare local form
//  6. fallback                   strip one leading "0", prefix "+20" unless
//     a "+" is already present
func Normalize(raw string) string {
	p := strip(raw)
	digits := strings.TrimPrefix(p, "+")

	switch {
	case strings.HasPrefix(p, exitPrefix):
		return "+" + CountryCode + p[len(exitPrefix):]
	case strings.HasPrefix(p, MobilePrefix):
		return p
	case strings.HasPrefix(p, CountryCode+"1") && len(digits) == 12:
		return "+" + p
	case strings.HasPrefix(p, "01") && len(digits) == 11:
		return "+" + CountryCode + p[1:]
	case strings.HasPrefix(p, "1") && len(digits) == 10:
		return "+" + CountryCode + p
	case !strings.HasPrefix(p, "+"):
		return "+" + CountryCode + strings.TrimPrefix(p, "0")
	default:
		return p
	}
}

// Variations returns the canonical form plus the plausible alternate spellings
// of the same number, used to broaden matching against records stored before
// the canonical rule existed. When the canonical form does not carry the
// supported mobile prefix there is no confident expansion, and only the raw
// input and its canonical form are returned.
func Variations(raw string) []string {
	canonical := Normalize(raw)
	if !strings.HasPrefix(canonical, MobilePrefix) {
		return pstrings.DedupeAndTrim([]string{raw, canonical})
	}

	local := strings.TrimPrefix(canonical, "+"+CountryCode)
	return pstrings.DedupeAndTrim([]string{
		canonical,
		CountryCode + local,
		"0" + local,
		local,
		exitPrefix + local,
		raw,
	})
}

// Equivalent reports whether two raw spellings denote the same device under
// the canonical rule.
func Equivalent(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// strip drops every character that is not a digit, keeping a single leading
// "+" when the input starts with one.
func strip(raw string) string {
	trimmed := strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(trimmed))
	if strings.HasPrefix(trimmed, "+") {
		b.WriteByte('+')
	}
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
