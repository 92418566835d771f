// internal/extract/fields.go
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Sentinel values stored when a field is absent from the source markup.
// Distinct from the empty string so consumers can tell "absent" from "blank".
const (
	PartiesNotFound     = "Parties information not found"
	FilingDateNotFound  = "Filing date not found"
	NextHearingNotFound = "Next hearing date not found"
	CaseStatusNotFound  = "Case status not found"
)

// datePattern accepts 1-2 digit day/month and 2 or 4 digit year with - or / separators
const datePattern = `(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`

// Rule is one label-prefixed extraction pattern. Rules are tried in order;
// the ordering encodes precision-over-recall against unversioned court markup.
type Rule struct {
	Name string
	Re   *regexp.Regexp
}

// Rules holds the ordered pattern lists for every extracted field. A Rules
// value is immutable after construction; extraction functions take it as an
// argument instead of reaching for shared state.
type Rules struct {
	Parties     []Rule
	FilingDate  []Rule
	NextHearing []Rule
	Status      []Rule
}

// DefaultRules returns the pattern set tuned for the court status pages.
func DefaultRules() Rules {
	return Rules{
		Parties: []Rule{
			{"petitioner", regexp.MustCompile(`(?im)petitioner[:\s]*([^<\n\r]+)`)},
			{"respondent", regexp.MustCompile(`(?im)respondent[:\s]*([^<\n\r]+)`)},
			{"appellant", regexp.MustCompile(`(?im)appellant[:\s]*([^<\n\r]+)`)},
			{"plaintiff", regexp.MustCompile(`(?im)plaintiff[:\s]*([^<\n\r]+)`)},
			{"defendant", regexp.MustCompile(`(?im)defendant[:\s]*([^<\n\r]+)`)},
		},
		FilingDate: []Rule{
			{"filed on", regexp.MustCompile(`(?i)filed\s+on[:\s]*` + datePattern)},
			{"filing date", regexp.MustCompile(`(?i)filing\s+date[:\s]*` + datePattern)},
			{"date of filing", regexp.MustCompile(`(?i)date\s+of\s+filing[:\s]*` + datePattern)},
		},
		NextHearing: []Rule{
			{"next hearing", regexp.MustCompile(`(?i)next\s+hearing[:\s]*` + datePattern)},
			{"next date", regexp.MustCompile(`(?i)next\s+date[:\s]*` + datePattern)},
			{"hearing date", regexp.MustCompile(`(?i)hearing\s+date[:\s]*` + datePattern)},
		},
		Status: []Rule{
			{"status", regexp.MustCompile(`(?i)status[:\s]*([^<\n\r]+)`)},
			{"stage", regexp.MustCompile(`(?i)stage[:\s]*([^<\n\r]+)`)},
			{"current status", regexp.MustCompile(`(?i)current\s+status[:\s]*([^<\n\r]+)`)},
		},
	}
}

// FieldSet is the structured output of field extraction. Every field carries
// either an extracted value or its sentinel, never an empty string.
type FieldSet struct {
	PartiesSummary  string
	FilingDate      string
	NextHearingDate string
	CaseStatus      string
}

// Fields extracts structured case fields from raw markup. Pure: the same
// markup always yields the same FieldSet. Unparseable markup degrades to the
// sentinel-only result rather than failing the pipeline.
func Fields(markup string, rules Rules) FieldSet {
	fs := FieldSet{
		PartiesSummary:  PartiesNotFound,
		FilingDate:      FilingDateNotFound,
		NextHearingDate: NextHearingNotFound,
		CaseStatus:      CaseStatusNotFound,
	}

	text := flattenText(markup)
	if text == "" {
		return fs
	}

	if parties := extractParties(text, rules.Parties); parties != "" {
		fs.PartiesSummary = parties
	}
	if d := firstMatch(text, rules.FilingDate); d != "" {
		fs.FilingDate = d
	}
	if d := firstMatch(text, rules.NextHearing); d != "" {
		fs.NextHearingDate = d
	}
	if s := firstMatch(text, rules.Status); s != "" {
		fs.CaseStatus = s
	}

	return fs
}

// flattenText strips tags and returns the document's visible text. Falls back
// to the raw input when the markup cannot be parsed at all.
func flattenText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	return doc.Text()
}

// extractParties collects ALL matches across all role patterns and joins them.
// Party lists legitimately span several roles, so this is the one field where
// first-match-wins does not apply.
func extractParties(text string, rules []Rule) string {
	lower := strings.ToLower(text)

	var parties []string
	for _, rule := range rules {
		for _, m := range rule.Re.FindAllStringSubmatch(lower, -1) {
			if len(m) > 1 {
				if v := strings.TrimSpace(m[1]); v != "" {
					parties = append(parties, v)
				}
			}
		}
	}

	return strings.Join(parties, "; ")
}

// firstMatch returns the trimmed capture of the first rule that matches.
func firstMatch(text string, rules []Rule) string {
	for _, rule := range rules {
		if m := rule.Re.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
