package transcript

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/kingmrb/post-call-webhook/internal/menu"
)

// ErrNoFinalOrder means no confirmation anchor was found anywhere in the
// transcript; there is nothing to parse.
var ErrNoFinalOrder = errors.New("transcript: no final order confirmation found")

// anchorRes are the agent phrasings that mark the authoritative statement of
// the order. All require the closing "is that correct".
var anchorRes = []*regexp.Regexp{
	regexp.MustCompile(`got it! your final order is:\s*(.+?)\s*is that correct`),
	regexp.MustCompile(`your final order is:\s*(.+?)\s*is that correct`),
	regexp.MustCompile(`here'?s your order:\s*(.+?)\s*is that correct`),
	regexp.MustCompile(`to confirm:\s*(.+?)\s*is that correct`),
}

// affirmativeRe covers the customer responses we accept as confirmation.
var affirmativeRe = regexp.MustCompile(`\b(yes|yeah|correct|right|confirm|confirmed)\b|that's right`)

var segmentSplitRe = regexp.MustCompile(`\s*[,;]\s*`)

// FinalOrder is the segmenter's result: the captured order text, where in the
// transcript the agent said it, and whether the customer affirmed it.
type FinalOrder struct {
	OrderText string
	TurnIndex int
	Confirmed bool
}

// FindFinalOrder scans the whole conversation for the last confirmation
// anchor. Later anchors supersede earlier ones: tentative confirmations get
// restated as the order evolves, and only the final restatement is binding.
func FindFinalOrder(turns []Turn) (*FinalOrder, error) {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(strings.ToLower(t.Message))
		b.WriteString("\n")
	}
	convo := b.String()

	orderText, found := "", false
	bestStart := -1
	for _, re := range anchorRes {
		for _, m := range re.FindAllStringSubmatchIndex(convo, -1) {
			if m[0] > bestStart {
				bestStart = m[0]
				orderText = convo[m[2]:m[3]]
				found = true
			}
		}
	}
	if !found {
		return nil, ErrNoFinalOrder
	}

	orderText = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(orderText), "."))

	result := &FinalOrder{OrderText: orderText, TurnIndex: -1}
	for i, t := range turns {
		if t.Role == RoleAgent && strings.Contains(strings.ToLower(t.Message), orderText) {
			result.TurnIndex = i
		}
	}
	if result.TurnIndex >= 0 && result.TurnIndex+1 < len(turns) {
		next := turns[result.TurnIndex+1]
		result.Confirmed = next.Role == RoleUser && IsAffirmative(next.Message)
	}
	return result, nil
}

// IsAffirmative reports whether a customer utterance counts as a yes.
func IsAffirmative(message string) bool {
	return affirmativeRe.MatchString(strings.ToLower(message))
}

// SegmentItems splits captured order text into candidate item phrases.
// Commas and semicolons always split; the word "and" splits only when what
// follows starts with a quantity word, a digit, or a lowercase letter, so an
// "&" inside an item name never breaks the phrase apart.
func SegmentItems(orderText string) []string {
	var segments []string
	for _, part := range segmentSplitRe.Split(orderText, -1) {
		segments = append(segments, splitOnAnd(part)...)
	}

	out := segments[:0]
	for _, seg := range segments {
		seg = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(seg), "and "))
		if len(seg) > 2 {
			out = append(out, seg)
		}
	}
	return out
}

func splitOnAnd(s string) []string {
	var parts []string
	rest := s
	for {
		idx := strings.Index(rest, " and ")
		if idx < 0 {
			break
		}
		after := rest[idx+len(" and "):]
		if !startsLikeItem(after) {
			// This "and" belongs to the item name; keep scanning past it.
			head := rest[:idx+len(" and ")]
			tail := splitOnAnd(after)
			tail[0] = head + tail[0]
			return append(parts, tail...)
		}
		parts = append(parts, rest[:idx])
		rest = after
	}
	return append(parts, rest)
}

func startsLikeItem(s string) bool {
	s = strings.TrimLeft(s, " ")
	if s == "" {
		return false
	}
	c := s[0]
	if c >= '0' && c <= '9' {
		return true
	}
	if c >= 'a' && c <= 'z' {
		return true
	}
	word, _, _ := strings.Cut(s, " ")
	_, ok := numberWords[word]
	return ok
}

// ParseItems runs each segment through the staged pipeline: quantity off the
// front, spice level anywhere in the remainder, then normalization against
// the catalog. Segments that resolve to nothing are logged and dropped; a bad
// segment never fails the whole parse.
func ParseItems(orderText string, catalog *menu.Catalog, log *zap.Logger) []Candidate {
	var items []Candidate
	for _, seg := range SegmentItems(orderText) {
		qty, rest := ExtractQuantity(seg)
		spice := ExtractSpiceLevel(rest)

		name, ok := catalog.Resolve(rest)
		if !ok {
			fields := []zap.Field{zap.String("segment", seg)}
			if suggestion := catalog.Suggest(rest); suggestion != "" {
				fields = append(fields, zap.String("closest_match", suggestion))
			}
			log.Warn("unresolved order item, dropping segment", fields...)
			continue
		}

		items = append(items, Candidate{
			Name:       name,
			Quantity:   qty,
			SpiceLevel: spice,
		})
	}
	return items
}
