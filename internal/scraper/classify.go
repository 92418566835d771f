// internal/scraper/classify.go
package scraper

import "strings"

// Classification is the terminal state of one search attempt.
type Classification string

const (
	// ClassFound means the page affirmatively shows case details.
	ClassFound Classification = "found"
	// ClassNotFound means the site affirmatively reported no such case.
	// This is conclusive and must not trigger the fallback path.
	ClassNotFound Classification = "not_found"
	// ClassAmbiguous means neither signal matched; extraction is unsafe.
	ClassAmbiguous Classification = "ambiguous"
	// ClassChallenge means the page was ambiguous AND an automation challenge
	// was detected, so the gate is the likelier explanation than markup drift.
	ClassChallenge Classification = "challenge"
)

// negativeKeywords affirmatively signal a missing case.
var negativeKeywords = []string{
	"no records found",
	"case not found",
	"invalid case",
	"record not found",
	"no case found",
}

// positiveKeywords signal that case details are present. Extraction only runs
// after a positive match; anything else is treated as failure.
var positiveKeywords = []string{
	"case details",
	"petitioner",
	"respondent",
	"hearing",
	"order",
	"judgment",
	"parties",
}

// Classify decides what the post-submission markup represents. Negative
// signals are checked first: a "no records found" page routinely contains
// words like "case" that would otherwise read as positive.
//
// A detected challenge does not override an affirmative outcome in either
// direction — if the site still answered, the challenge evidently was not
// blocking. It only disambiguates the ambiguous case.
func Classify(markup string, challengeDetected bool) Classification {
	lower := strings.ToLower(markup)

	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			return ClassNotFound
		}
	}

	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			return ClassFound
		}
	}

	if challengeDetected {
		return ClassChallenge
	}
	return ClassAmbiguous
}
