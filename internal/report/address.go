package report

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/auctionkit/appraisal-extractor/constants"
	"github.com/auctionkit/appraisal-extractor/internal/document"
)

var (
	colonRe     = regexp.MustCompile(`[:：]`)
	lotNumberRe = regexp.MustCompile(`\d+-\d+`)
	// parenthesized run containing at least one Hangul syllable
	hangulParenRe = regexp.MustCompile(`\(([^)]*[가-힣][^)]*)\)`)
)

// maxAddressRunes is the length above which a cleaned candidate is cut back
// to the last recognizable address boundary.
const maxAddressRunes = 80

// ExtractAddress pulls the subject address out of the document. Pages known
// to hold the address section are tried first; the scored document-wide scan
// is the fallback. Returns "" when nothing survives cleaning and validation.
func ExtractAddress(doc document.Document, sectionPages []int) string {
	if addr := sectionAddress(doc, sectionPages); addr != "" {
		return addr
	}
	return fallbackAddress(doc)
}

// sectionAddress collects candidates from every address-section page and
// keeps the LAST one: location sections are rendered after the narrative
// body, so the final occurrence is the most specific. (The document-wide
// fallback instead keeps the highest-scoring candidate; the asymmetry is
// deliberate, matching observed report layouts.)
func sectionAddress(doc document.Document, sectionPages []int) string {
	var candidates []string
	for _, p := range sectionPages {
		text, err := doc.PageText(p)
		if err != nil {
			continue
		}
		candidates = append(candidates, sectionCandidates(splitLines(text))...)
	}
	if len(candidates) == 0 {
		return ""
	}
	return CleanAddress(candidates[len(candidates)-1])
}

// sectionCandidates generates address candidates from the lines of one
// address-section page. Two passes: labeled lines ("storage place: ..."),
// then unlabeled lines that are address-shaped on their own.
func sectionCandidates(lines []string) []string {
	var out []string

	for idx, ln := range lines {
		for _, label := range constants.AddressLabels {
			if !strings.Contains(ln, label) {
				continue
			}
			parts := colonRe.Split(ln, 2)
			if len(parts) == 2 && strings.Contains(parts[0], label) {
				if addr := strings.TrimSpace(parts[1]); runeLen(addr) > 5 {
					out = append(out, addr)
					continue
				}
			}
			// No colon: the next line may carry the value.
			if len(parts) == 1 && idx+1 < len(lines) {
				next := lines[idx+1]
				if runeLen(next) > 5 && containsAny(next, constants.AdminDivisions) {
					out = append(out, next)
				}
			}
		}
	}

	for idx, ln := range lines {
		if runeLen(ln) < 10 {
			continue
		}
		if !containsAny(ln, constants.AdminDivisions) {
			continue
		}
		if containsAny(ln, constants.AddressStopTerms) {
			continue
		}
		// Require a fine-grained unit marker so bare region mentions in
		// prose don't qualify.
		if !containsAny(ln, constants.AddressUnits) || runeLen(ln) <= 10 {
			continue
		}
		if strings.HasPrefix(ln, "원") {
			// price fragments ("원 내외로 ...") wrap onto their own line
			continue
		}
		full := ln
		// Addresses wrap; greedily absorb up to two continuation lines.
	grow:
		for i := idx + 1; i < idx+3 && i < len(lines); i++ {
			next := lines[i]
			if containsAny(next, constants.AddressStopTerms) {
				break
			}
			switch {
			case containsAny(next, constants.AddressContinuations):
				full += " " + next
			case next[0] >= '0' && next[0] <= '9':
				full += " " + next
			case next == "(" || next == ")" || next == "-":
				full += next
			default:
				break grow
			}
		}
		out = append(out, full)
	}

	return out
}

// addressCandidate is an ephemeral scored candidate used by the fallback.
type addressCandidate struct {
	text  string
	score int
}

// fallbackAddress scans every page and keeps the highest-scoring candidate.
func fallbackAddress(doc document.Document) string {
	best := addressCandidate{}
	for i := 0; i < doc.PageCount(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		for _, c := range fallbackCandidates(splitLines(text)) {
			if c.score > best.score {
				best = c
			}
		}
	}
	if best.text == "" {
		return ""
	}
	return CleanAddress(best.text)
}

// fallbackCandidates scores address-shaped lines across arbitrary pages.
// Labeled lines get fixed high scores tiered by how directly the value was
// recovered; unlabeled lines are scored by shape.
func fallbackCandidates(lines []string) []addressCandidate {
	shapeKeywords := append(append([]string{}, constants.AdminDivisions...), constants.AddressUnits...)

	var out []addressCandidate
	for idx, ln := range lines {
		if runeLen(ln) < 10 {
			continue
		}

		if containsAny(ln, constants.LocationLabels) {
			parts := colonRe.Split(ln, 2)
			if len(parts) == 2 {
				if addr := strings.TrimSpace(parts[1]); runeLen(addr) > 5 {
					out = append(out, addressCandidate{text: addr, score: 100})
				}
				continue
			}
			if m := hangulParenRe.FindStringSubmatch(ln); m != nil {
				addr := strings.TrimSpace(m[1])
				if runeLen(addr) > 5 && containsAny(addr, shapeKeywords) {
					out = append(out, addressCandidate{text: addr, score: 95})
				}
				continue
			}
			if idx+1 < len(lines) {
				next := lines[idx+1]
				if runeLen(next) > 5 && containsAny(next, shapeKeywords) {
					out = append(out, addressCandidate{text: next, score: 90})
				}
			}
			continue
		}

		if containsAny(ln, shapeKeywords) && !containsAny(ln, constants.FallbackStopTerms) {
			out = append(out, addressCandidate{text: ln, score: scoreAddressLine(ln, shapeKeywords)})
		}
	}
	return out
}

// scoreAddressLine rates how address-shaped a line is: longer lines, lot
// numbers (digits-hyphen-digits), parentheticals, and keyword density all
// raise the score.
func scoreAddressLine(ln string, keywords []string) int {
	score := runeLen(ln)
	score += strings.Count(ln, "(") * 10
	score += len(lotNumberRe.FindAllString(ln, -1)) * 20
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(ln, kw) {
			hits++
		}
	}
	return score + hits*5
}

var addressPrefixRes = []*regexp.Regexp{
	regexp.MustCompile(`^차량\s*보관\s*장소\s*[:：]?\s*`),
	regexp.MustCompile(`^보관\s*장소\s*[:：]?\s*`),
	regexp.MustCompile(`^소\s*재\s*지\s*[:：]?\s*`),
	regexp.MustCompile(`^\(보관장소\)\s*`),
	regexp.MustCompile(`\s*\(보관장소\)$`),
	regexp.MustCompile(`^\(소재지\)\s*`),
	regexp.MustCompile(`\s*\(소재지\)$`),
	regexp.MustCompile(`^(본기계기구는|기계기구는|기계기구|본건은|본건|대상물건은|대상물건|자동차|차량)\s*`),
}

var (
	// ") located within ..." style clauses after the closing parenthesis
	parenSuffixRe = regexp.MustCompile(`\)\s*(내에\s*소재함?|소재함?|번지\s*도로명\s*주소).*$`)
	// trailing clauses without a parenthesis boundary
	bareSuffixRe = regexp.MustCompile(`\s*(내에\s*소재함?|에\s*소재함|에\s*보관\s*중임?)\s*$`)
	quotedRe     = regexp.MustCompile(`\s*"[^"]*"`)
)

// CleanAddress normalizes a raw address candidate: label and subject-phrase
// prefixes are stripped, whitespace and control characters collapse to
// single spaces, trailing boilerplate clauses are dropped, and overlong
// strings are cut at the last recognizable boundary. Returns "" when the
// result fails validation. Cleaning is idempotent.
func CleanAddress(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	s = stripPrefixes(s)
	s = collapseSpace(s)
	s = stripPrefixes(s) // collapsing may expose a prefix again
	s = parenSuffixRe.ReplaceAllString(s, ")")
	s = bareSuffixRe.ReplaceAllString(s, "")
	s = quotedRe.ReplaceAllString(s, "")
	s = truncateOverlong(strings.TrimSpace(s))
	if !ValidAddress(s) {
		return ""
	}
	return s
}

// ValidAddress rejects strings too short to be an address, strings without
// an administrative-division marker, and strings still carrying report
// boilerplate.
func ValidAddress(s string) bool {
	if runeLen(s) < 5 {
		return false
	}
	divisions := append(append([]string{}, constants.AdminDivisions...), "읍", "면", "동", "리")
	if !containsAny(s, divisions) {
		return false
	}
	disallowed := []string{"법원", "경매", "감정평가", "사무소", "등록번호", "게시되어", "시세", "매매", "사이트"}
	return !containsAny(s, disallowed)
}

func stripPrefixes(s string) string {
	for _, re := range addressPrefixRes {
		s = strings.TrimSpace(re.ReplaceAllString(s, ""))
	}
	return s
}

// collapseSpace folds control characters and whitespace runs into single
// spaces.
func collapseSpace(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// truncateOverlong cuts strings longer than maxAddressRunes back to the last
// recognizable address boundary, preferring a balanced closing parenthesis,
// then a lot-number token, then a unit keyword.
func truncateOverlong(s string) string {
	r := []rune(s)
	if len(r) <= maxAddressRunes {
		return s
	}
	depth, cut := 0, -1
	for i, c := range r {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				cut = i + 1
			}
		}
	}
	if cut > 0 {
		return strings.TrimSpace(string(r[:cut]))
	}
	head := string(r[:maxAddressRunes])
	if locs := lotNumberRe.FindAllStringIndex(head, -1); len(locs) > 0 {
		return strings.TrimSpace(head[:locs[len(locs)-1][1]])
	}
	if i := lastIndexAny(head, constants.AddressUnits); i > 0 {
		return strings.TrimSpace(head[:i])
	}
	return strings.TrimSpace(head)
}

// lastIndexAny returns the byte index just past the rightmost occurrence of
// any keyword, or -1.
func lastIndexAny(s string, keywords []string) int {
	best := -1
	for _, kw := range keywords {
		if i := strings.LastIndex(s, kw); i >= 0 && i+len(kw) > best {
			best = i + len(kw)
		}
	}
	return best
}

func runeLen(s string) int { return len([]rune(s)) }
