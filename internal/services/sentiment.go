package services

import (
	"strings"
)

// SentimentThreshold is the polarity below which a review's feedback is
// flagged for operator attention. Advisory only; nothing is blocked.
const SentimentThreshold = -0.5

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "helpful": {}, "amazing": {},
	"awesome": {}, "fantastic": {}, "reliable": {}, "clear": {}, "kind": {},
	"thorough": {}, "solid": {}, "strong": {}, "friendly": {}, "supportive": {},
	"impressive": {}, "creative": {}, "dependable": {}, "love": {}, "loved": {},
	"brilliant": {}, "best": {}, "nice": {}, "wonderful": {}, "talented": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "lazy": {}, "useless": {},
	"horrible": {}, "sloppy": {}, "rude": {}, "worst": {}, "unreliable": {},
	"poor": {}, "careless": {}, "toxic": {}, "incompetent": {}, "annoying": {},
	"hate": {}, "hated": {}, "unhelpful": {}, "disappointing": {}, "weak": {},
	"messy": {}, "dishonest": {}, "unresponsive": {}, "selfish": {},
}

// negators flip the valence of the word that follows them.
var negators = map[string]struct{}{
	"not": {}, "never": {}, "no": {}, "hardly": {},
}

// SentimentScore returns a polarity in [-1, 1] for the given text: the mean
// valence of recognized opinion words, with simple negation flipping.
// Text with no recognized words scores 0 (neutral).
func SentimentScore(text string) float64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})

	var total float64
	var hits int
	negated := false

	for _, w := range words {
		if _, ok := negators[w]; ok {
			negated = true
			continue
		}

		var valence float64
		if _, ok := positiveWords[w]; ok {
			valence = 1
		} else if _, ok := negativeWords[w]; ok {
			valence = -1
		}

		if valence != 0 {
			if negated {
				valence = -valence
			}
			total += valence
			hits++
		}
		negated = false
	}

	if hits == 0 {
		return 0
	}
	return total / float64(hits)
}
