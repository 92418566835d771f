// internal/extract/links.go
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/law-makers/courtdata/internal/urlutil"
	"github.com/law-makers/courtdata/pkg/models"
)

// documentKeywords qualify an anchor as a document link by its visible text
// even when the href carries no .pdf hint (e.g. "view?id=1").
var documentKeywords = []string{"order", "judgment", "download", "pdf"}

// Links scans every anchor in the markup for document-link candidates and
// resolves relative hrefs against baseURL. Order is preserved as encountered
// and duplicates are kept — the court site lists the same document under
// multiple labels and collapsing them is a presentation decision.
func Links(markup, baseURL string) []models.DocumentLink {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var links []models.DocumentLink
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}

		label := strings.TrimSpace(sel.Text())
		if !isDocumentLink(href, label) {
			return
		}

		if label == "" {
			label = "Download PDF"
		}

		links = append(links, models.DocumentLink{
			URL:   urlutil.Resolve(baseURL, href),
			Label: label,
		})
	})

	return links
}

// isDocumentLink reports whether an anchor points at a case document.
func isDocumentLink(href, text string) bool {
	lowerHref := strings.ToLower(href)
	if strings.HasSuffix(lowerHref, ".pdf") || strings.Contains(lowerHref, "pdf") {
		return true
	}

	lowerText := strings.ToLower(text)
	for _, kw := range documentKeywords {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}
