package trial

import "strings"

// Rubric keyword sets. Matching is case-sensitive substring containment with
// no word-boundary checks, so a keyword may match inside a longer word
// ("injustice" satisfies "justice").
var (
	ordinalMarkers   = []string{"first", "second", "third", "firstly", "secondly"}
	evidenceKeywords = []string{"evidence", "witness", "fact", "because", "proof"}
	valueKeywords    = []string{"justice", "fairness", "responsibility", "consideration", "respect", "trust", "cooperation"}
)

// Feedback tags emitted by ScoreSpeech, in rubric order.
const (
	FeedbackSufficientDetail = "sufficient explanation"
	FeedbackNeedsDetail      = "needs more detail"
	FeedbackStructured       = "structured argument"
	FeedbackEvidence         = "evidence given"
	FeedbackValues           = "value language used"
)

// ScoreSpeech rates an argument on an additive rubric:
//
//	+20 more than 50 words
//	+30 any ordinal marker (first/second/third ...)
//	+25 any evidentiary keyword
//	+25 any value-language keyword
//
// The maximum is 100. Empty or whitespace-only text scores 0 with no
// feedback. Adding a previously-absent trigger never lowers the score.
func ScoreSpeech(text string) (int, []string) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	score := 0
	var feedback []string

	if len(strings.Fields(text)) > 50 {
		score += 20
		feedback = append(feedback, FeedbackSufficientDetail)
	} else {
		feedback = append(feedback, FeedbackNeedsDetail)
	}
	if containsAny(text, ordinalMarkers) {
		score += 30
		feedback = append(feedback, FeedbackStructured)
	}
	if containsAny(text, evidenceKeywords) {
		score += 25
		feedback = append(feedback, FeedbackEvidence)
	}
	if containsAny(text, valueKeywords) {
		score += 25
		feedback = append(feedback, FeedbackValues)
	}
	return score, feedback
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
