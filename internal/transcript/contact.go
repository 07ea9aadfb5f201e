package transcript

import (
	"regexp"
	"strings"
)

var (
	contactAnchorRe = regexp.MustCompile(`(?i)to confirm, your name is\s+(.+?)\s+and your phone number is\s+(.+?)[.?]?\s*is that correct`)
	addressRe       = regexp.MustCompile(`(?i)(?:address is|live at|deliver to)\s+([^.,]+)`)
	digitRe         = regexp.MustCompile(`\d`)
)

// ExtractContact recovers the customer's name, phone and address from a
// transcript. Name and phone come from the last agent utterance matching the
// identity confirmation template; the following customer turn should be
// affirmative, but extraction proceeds either way (the result is merely
// degraded). The address is mined from user turns independently.
func ExtractContact(turns []Turn) Contact {
	contact := Contact{Name: Unresolved, Phone: Unresolved, Address: Unresolved}

	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role != RoleAgent {
			continue
		}
		m := contactAnchorRe.FindStringSubmatch(turns[i].Message)
		if m == nil {
			continue
		}
		if name := strings.TrimSpace(m[1]); name != "" {
			contact.Name = name
		}
		if phone := canonicalPhone(m[2]); phone != "" {
			contact.Phone = phone
		}
		break
	}

	// The address is rarely in the identity confirmation; customers volunteer
	// it mid-call. The most recent statement wins.
	for _, t := range turns {
		if t.Role != RoleUser {
			continue
		}
		if m := addressRe.FindStringSubmatch(t.Message); m != nil {
			if addr := strings.TrimSpace(m[1]); addr != "" {
				contact.Address = addr
			}
		}
	}

	return contact
}

// canonicalPhone reduces a spoken or formatted phone token to DDD-DDD-DDDD.
// Anything other than exactly ten digits is rejected.
func canonicalPhone(raw string) string {
	digits := strings.Join(digitRe.FindAllString(raw, -1), "")
	if len(digits) != 10 {
		return ""
	}
	return digits[0:3] + "-" + digits[3:6] + "-" + digits[6:10]
}
