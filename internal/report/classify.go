package report

import (
	"strings"

	"github.com/auctionkit/appraisal-extractor/internal/document"
)

const (
	// classifySamplePages is how many leading pages the classifier samples.
	classifySamplePages = 3
	// minPageTextChars is the trimmed-length threshold above which a page
	// counts as having extractable text. Scanned pages typically yield
	// near-zero characters plus artifacts, so a low absolute bar works.
	minPageTextChars = 100
	// minTextPages is the majority requirement across the sample. A single
	// noisy page must not flip the decision.
	minTextPages = 2
)

// Classify decides whether the document is text-based or scanned. It never
// fails: a page that cannot be read counts as having no text, so an
// unreadable sample conservatively classifies as scanned and downstream
// extraction is skipped.
func Classify(doc document.Document) Classification {
	sample := doc.PageCount()
	if sample > classifySamplePages {
		sample = classifySamplePages
	}
	withText := 0
	for i := 0; i < sample; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		if len([]rune(strings.TrimSpace(text))) > minPageTextChars {
			withText++
		}
	}
	return Classification{TextBased: withText >= minTextPages}
}
