package catalog

import (
	"regexp"
	"strings"
)

// EffectKeyword is one entry of the effect-points table.
type EffectKeyword struct {
	Keyword string
	Points  int
	re      *regexp.Regexp
}

// EffectKeywords is the keyword -> weight table. Order matches the columns of
// the preprocessed dataset.
var EffectKeywords = []EffectKeyword{
	newEffectKeyword("destroy", 10),
	newEffectKeyword("banish", 10),
	newEffectKeyword("draw", 20),
	newEffectKeyword("summon", 20),
	newEffectKeyword("discard", -10),
	newEffectKeyword("gain", 20),
	newEffectKeyword("lose", -10),
	newEffectKeyword("from your deck", 20),
	newEffectKeyword("inflict", 20),
}

// newEffectKeyword compiles a case-insensitive whole-word matcher. Phrases
// tolerate any run of whitespace between their words.
func newEffectKeyword(keyword string, points int) EffectKeyword {
	words := strings.Fields(keyword)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	pattern := `(?i)\b` + strings.Join(words, `\s+`) + `\b`
	return EffectKeyword{Keyword: keyword, Points: points, re: regexp.MustCompile(pattern)}
}

// Matches reports whether text contains the keyword on word boundaries.
func (k EffectKeyword) Matches(text string) bool {
	return k.re.MatchString(text)
}

// EffectPoints sums the weight of every keyword present in text. Each keyword
// counts once no matter how often it appears.
func EffectPoints(text string) int {
	points := 0
	for _, k := range EffectKeywords {
		if k.Matches(text) {
			points += k.Points
		}
	}
	return points
}

func hasKeyword(text, keyword string) bool {
	for _, k := range EffectKeywords {
		if k.Keyword == keyword {
			return k.Matches(text)
		}
	}
	return false
}
