package report

import (
	"strings"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/document"
)

// FindSectionPages returns the 0-based indices of pages whose text contains
// any of the section kind's heading synonyms, in document order. Matching is
// exact substring search: headings are short and rendered verbatim, so
// case/whitespace normalization would only admit false positives.
//
// A document may yield zero, one, or many pages; the appraisal section often
// spans two pages plus repeated header pages, which downstream segmentation
// filters out.
func FindSectionPages(doc document.Document, kind constants.SectionKind) []int {
	return findPages(doc, constants.HeadingSynonyms[kind])
}

func findPages(doc document.Document, synonyms []string) []int {
	var pages []int
	for i := 0; i < doc.PageCount(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		for _, syn := range synonyms {
			if strings.Contains(text, syn) {
				pages = append(pages, i)
				break
			}
		}
	}
	return pages
}

// splitLines splits page text into trimmed, non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
