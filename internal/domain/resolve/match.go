package resolve

import (
	"strings"

	"github.com/rpggio/sitecord/internal/domain/message"
)

// MatchAddress reports whether a parsed location and a stored address refer
// to the same place: equal, or either contains the other, ignoring case and
// whitespace runs.
func MatchAddress(where, address string) bool {
	w := message.Lower(where)
	a := message.Lower(address)
	if w == "" || a == "" {
		return false
	}
	return w == a || strings.Contains(a, w) || strings.Contains(w, a)
}

// MatchAddressInMessage reports whether a whole message body mentions a
// stored address. Besides containment in either direction it accepts a body
// in which at least min(2, n) of the address's n tokens appear, which lets
// "Freedom ave" match "123 Freedom Ave". The token rule is an approximation:
// "100 Main St" and "100 Main Ave" both match a body mentioning "100 main".
func MatchAddressInMessage(body, address string) bool {
	b := message.Lower(body)
	a := message.Lower(address)
	if b == "" || a == "" {
		return false
	}
	if strings.Contains(b, a) || strings.Contains(a, b) {
		return true
	}

	tokens := strings.Fields(a)
	present := 0
	for _, tok := range tokens {
		if strings.Contains(b, tok) {
			present++
		}
	}
	return present >= min(2, len(tokens))
}

// MatchPhone reports whether the sender's number ends with the stored
// number, comparing digits only so country-code prefixes are tolerated. The
// returned length is the stored number's digit count, used to prefer the
// tightest of several matches.
func MatchPhone(sender, stored string) (int, bool) {
	from := message.NormalizePhone(sender)
	digits := message.NormalizePhone(stored)
	if from == "" || digits == "" {
		return 0, false
	}
	if !strings.HasSuffix(from, digits) {
		return 0, false
	}
	return len(digits), true
}
