// internal/output/markdown.go
package output

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"

	"github.com/law-makers/courtdata/internal/urlutil"
	"github.com/law-makers/courtdata/pkg/models"
)

// RenderMarkdown produces a readable transcript of a case record: a summary
// header followed by the cleaned result page converted to Markdown.
// Relative links in the page are resolved against baseURL.
func RenderMarkdown(rec *models.CaseRecord, baseURL string) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Case %s %s/%d\n\n", rec.Identity.CaseType, rec.Identity.CaseNumber, rec.Identity.FilingYear)
	if rec.Provenance == models.ProvenancePlaceholder {
		sb.WriteString("> Placeholder data: the live court site was unreachable.\n\n")
	}
	fmt.Fprintf(&sb, "- **Parties**: %s\n", rec.PartiesSummary)
	fmt.Fprintf(&sb, "- **Filing date**: %s\n", rec.FilingDate)
	fmt.Fprintf(&sb, "- **Next hearing**: %s\n", rec.NextHearingDate)
	fmt.Fprintf(&sb, "- **Status**: %s\n", rec.CaseStatus)
	fmt.Fprintf(&sb, "- **Retrieved**: %s\n\n", rec.Timestamp.Format("2006-01-02 15:04:05"))

	if len(rec.DocumentLinks) > 0 {
		sb.WriteString("## Documents\n\n")
		for _, link := range rec.DocumentLinks {
			fmt.Fprintf(&sb, "- [%s](%s)\n", link.Label, link.URL)
		}
		sb.WriteString("\n")
	}

	if rec.RawMarkup != "" {
		body, err := convertPage(rec.RawMarkup, baseURL)
		if err != nil {
			return "", err
		}
		sb.WriteString("## Result page\n\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// SaveMarkdown writes the transcript to filepath.
func SaveMarkdown(rec *models.CaseRecord, baseURL, filepath string) error {
	content, err := RenderMarkdown(rec, baseURL)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, []byte(content), 0644)
}

func convertPage(markup, baseURL string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	// Add rule to resolve relative links
	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}

			resolved := urlutil.Resolve(baseURL, href)
			title, hasTitle := selec.Attr("title")
			var titlePart string
			if hasTitle {
				titlePart = fmt.Sprintf(" %q", title)
			}
			str := fmt.Sprintf("[%s](%s)%s", selec.Text(), resolved, titlePart)
			return &str
		},
	})

	cleaned, err := CleanHTML(markup)
	if err != nil {
		return "", err
	}
	return converter.ConvertString(cleaned)
}
