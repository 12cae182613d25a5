package leadgen

import "strings"

// placeholderDomain is used when a lead has no resolvable website domain.
// Predicted addresses are pattern guesses either way; a neutral domain
// keeps them obviously non-deliverable.
const placeholderDomain = "example.com"

// PredictEmail guesses a contact address from the company's website
// domain. A named decision maker gets firstname@domain; otherwise the
// generic info@domain pattern is used.
func PredictEmail(websiteDomain, decisionMakerName string) string {
	domain := websiteDomain
	if domain == "" {
		domain = placeholderDomain
	}

	local := "info"
	if first := firstNameToken(decisionMakerName); first != "" {
		local = first
	}
	return local + "@" + domain
}

// firstNameToken returns the lowercased letters of the first name token,
// or "" when no usable token exists.
func firstNameToken(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToLower(fields[0]) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
