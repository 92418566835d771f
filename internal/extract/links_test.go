package extract

import "testing"

func TestLinks_RelativeResolution(t *testing.T) {
	markup := `<html><body><a href="docs/order1.pdf">Interim Order</a></body></html>`

	links := Links(markup, "https://example.org/case/")

	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].URL != "https://example.org/case/docs/order1.pdf" {
		t.Errorf("URL: got %q, want %q", links[0].URL, "https://example.org/case/docs/order1.pdf")
	}
	if links[0].Label != "Interim Order" {
		t.Errorf("Label: got %q, want %q", links[0].Label, "Interim Order")
	}
}

func TestLinks_TextKeywordOnly(t *testing.T) {
	// No .pdf anywhere in the href; the anchor text alone qualifies it
	markup := `<html><body><a href="view?id=1">Download Judgment</a></body></html>`

	links := Links(markup, "https://example.org/case/")

	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].URL != "https://example.org/case/view?id=1" {
		t.Errorf("URL: got %q", links[0].URL)
	}
}

func TestLinks_NonDocumentAnchorsSkipped(t *testing.T) {
	markup := `<html><body>
	<a href="/home">Home</a>
	<a href="/contact">Contact Us</a>
	<a href="case.pdf">Case File</a>
	</body></html>`

	links := Links(markup, "https://example.org/")

	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].Label != "Case File" {
		t.Errorf("Label: got %q", links[0].Label)
	}
}

func TestLinks_EmptyTextGetsDefaultLabel(t *testing.T) {
	markup := `<html><body><a href="judgment.pdf"></a></body></html>`

	links := Links(markup, "https://example.org/")

	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].Label != "Download PDF" {
		t.Errorf("Label: got %q, want %q", links[0].Label, "Download PDF")
	}
}

func TestLinks_OrderPreservedDuplicatesKept(t *testing.T) {
	markup := `<html><body>
	<a href="order.pdf">First listing</a>
	<a href="judgment.pdf">Judgment</a>
	<a href="order.pdf">Second listing of same order</a>
	</body></html>`

	links := Links(markup, "https://example.org/")

	if len(links) != 3 {
		t.Fatalf("expected 3 links (duplicates kept), got %d", len(links))
	}
	if links[0].Label != "First listing" || links[2].Label != "Second listing of same order" {
		t.Errorf("order not preserved: %+v", links)
	}
}
