package menu

import (
	"regexp"
	"strings"
)

var (
	quantifierRe = regexp.MustCompile(`^(?:an?\s+)?(?:orders?|pieces?)\s+of\s+`)
	spiceWordRe  = regexp.MustCompile(`\b(?:with\s+)?(?:very\s+mild|extra\s+spicy|very\s+hot|mild|medium|spicy|hot)\b`)
	hotAndSourRe = regexp.MustCompile(`^\s*(?:&|and)\s+sour\b`)
	fillerRe     = regexp.MustCompile(`\b(?:the|an|a|of|both|each|please)\b`)
	spaceRe      = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`[a-z0-9&]+`)
)

// Resolve maps a free-text phrase to a canonical menu name. The cleanup order
// is fixed: strip leading quantifier phrases, strip spice-level phrases, strip
// filler words, then look up aliases before canonical names. "hot" stays put
// when it opens "hot & sour" so the soup survives spice stripping.
func (c *Catalog) Resolve(text string) (string, bool) {
	clean := strings.ToLower(strings.TrimSpace(text))
	if clean == "" {
		return "", false
	}

	clean = quantifierRe.ReplaceAllString(clean, "")
	clean = stripSpiceWords(clean)
	clean = fillerRe.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(spaceRe.ReplaceAllString(clean, " "))
	if clean == "" {
		return "", false
	}

	for _, candidate := range singularForms(clean) {
		if target, ok := c.aliases[candidate]; ok {
			return target, true
		}
		if _, ok := c.items[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// Suggest returns the catalog entry sharing the most words with the given
// text, for skip-and-log diagnostics. Empty when nothing overlaps.
func (c *Catalog) Suggest(text string) string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return ""
	}

	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}

	best, bestScore := "", 0
	score := func(name string) int {
		n := 0
		for _, w := range wordRe.FindAllString(name, -1) {
			if seen[w] {
				n++
			}
		}
		return n
	}
	for name := range c.items {
		if s := score(name); s > bestScore {
			best, bestScore = name, s
		}
	}
	for alias, target := range c.aliases {
		if s := score(alias); s > bestScore {
			best, bestScore = target, s
		}
	}
	return best
}

// stripSpiceWords removes spice-level phrases, leaving "hot" alone when it is
// the first half of "hot & sour".
func stripSpiceWords(s string) string {
	var out strings.Builder
	last := 0
	for _, loc := range spiceWordRe.FindAllStringIndex(s, -1) {
		match := s[loc[0]:loc[1]]
		if strings.HasSuffix(match, "hot") && !strings.HasSuffix(match, "very hot") &&
			hotAndSourRe.MatchString(s[loc[1]:]) {
			continue
		}
		out.WriteString(s[last:loc[0]])
		last = loc[1]
	}
	out.WriteString(s[last:])
	return out.String()
}

// singularForms yields the phrase plus naive de-pluralized variants, most
// specific first. Spoken orders pluralize the item ("two chicken biryanis").
func singularForms(s string) []string {
	forms := []string{s}
	if v := strings.TrimSuffix(s, "es"); v != s {
		forms = append(forms, v)
	}
	if v := strings.TrimSuffix(s, "s"); v != s {
		forms = append(forms, v)
	}
	return forms
}
