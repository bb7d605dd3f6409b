package report

import (
	"regexp"
	"strings"

	"github.com/auctionkit/appraisal-extractor/internal/document"
)

// headingPattern pairs a field name with the pattern that opens its window.
// Order mirrors the fixed presentation order of the source documents; the
// tables are data so new phrasing variants stay additive.
type headingPattern struct {
	field string
	re    *regexp.Regexp
}

var carHeadings = []headingPattern{
	{"year_and_mileage", regexp.MustCompile(`(?:년식|연식).*?(?:및|및\s*주행거리)`)},
	{"color", regexp.MustCompile(`색상`)},
	{"condition", regexp.MustCompile(`관리상태`)},
	{"fuel", regexp.MustCompile(`사용연료`)},
	{"inspection_validity", regexp.MustCompile(`(?:유효검사기간|검사유효기간|수용장소\s*및\s*검사유효기간)`)},
	{"etc", regexp.MustCompile(`기타`)},
}

var shipHeadings = []headingPattern{
	{"hull_status", regexp.MustCompile(`선체\s*상태`)},
	{"engine_status", regexp.MustCompile(`기관\s*상태`)},
	{"equipment_status", regexp.MustCompile(`장비\s*상태`)},
	{"operation_info", regexp.MustCompile(`운항\s*정보`)},
	{"inspection_location", regexp.MustCompile(`검사\s*장소`)},
	{"etc", regexp.MustCompile(`기타`)},
}

// shipKeywords flag a vessel report; their absence means vehicle.
var shipKeywords = []string{"선박", "선체", "기관", "장비", "운항"}

var (
	spaceRe         = regexp.MustCompile(`\s+`)
	bracketNumberRe = regexp.MustCompile(`\(\d+\)`)
	pageMarkerRe    = regexp.MustCompile(`^page\s*:?\s*\d+`)
	pageFractionRe  = regexp.MustCompile(`^\d+/\d+$`)
	documentIDRe    = regexp.MustCompile(`^[a-z]\d{8}$`)
)

// minContentRunes filters dangling fragments (list bullets, stray digits)
// from field content.
const minContentRunes = 3

// ExtractAppraisal classifies the report family and segments the appraisal
// section into named fields. Returns the unknown variant when no appraisal
// pages exist.
func ExtractAppraisal(doc document.Document, sectionPages []int) AppraisalFields {
	if len(sectionPages) == 0 {
		return UnknownAppraisal()
	}
	var sb strings.Builder
	for _, p := range sectionPages {
		text, err := doc.PageText(p)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	text := sb.String()
	lines := splitLines(text)

	if containsAny(text, shipKeywords) {
		fields := segmentFields(lines, shipHeadings)
		return AppraisalFields{Type: TypeShip, Ship: &ShipFields{
			HullStatus:         optField(fields, "hull_status"),
			EngineStatus:       optField(fields, "engine_status"),
			EquipmentStatus:    optField(fields, "equipment_status"),
			OperationInfo:      optField(fields, "operation_info"),
			InspectionLocation: optField(fields, "inspection_location"),
			Etc:                optField(fields, "etc"),
		}}
	}
	fields := segmentFields(lines, carHeadings)
	return AppraisalFields{Type: TypeCar, Car: &CarFields{
		YearAndMileage:     optField(fields, "year_and_mileage"),
		Color:              optField(fields, "color"),
		Condition:          optField(fields, "condition"),
		Fuel:               optField(fields, "fuel"),
		InspectionValidity: optField(fields, "inspection_validity"),
		Etc:                optField(fields, "etc"),
	}}
}

// segmentFields runs the single-scan window segmentation. A heading match
// closes the previous field's window and opens its own; the heading line is
// never content. Page artifacts and condensed all-headings banner lines are
// skipped without disturbing the open window. The last window extends to the
// end of the text. Multi-line content stays newline-joined.
func segmentFields(lines []string, headings []headingPattern) map[string]string {
	content := make(map[string][]string)
	current := ""
	for _, ln := range lines {
		norm := normalizeLine(ln)
		if isPageArtifact(norm) {
			continue
		}
		// Three or more bracketed numbers mean a condensed table-of-contents
		// banner listing every section; never a heading, never content.
		if len(bracketNumberRe.FindAllString(norm, -1)) >= 3 {
			continue
		}
		if field, ok := matchHeading(ln, headings); ok {
			current = field
			continue
		}
		if current != "" && runeLen(ln) > minContentRunes {
			content[current] = append(content[current], ln)
		}
	}
	out := make(map[string]string, len(content))
	for field, lns := range content {
		out[field] = strings.Join(lns, "\n")
	}
	return out
}

func matchHeading(ln string, headings []headingPattern) (string, bool) {
	for _, h := range headings {
		if h.re.MatchString(ln) {
			return h.field, true
		}
	}
	return "", false
}

// normalizeLine lowercases and removes all whitespace so spacing variants of
// the same artifact compare equal.
func normalizeLine(ln string) string {
	return spaceRe.ReplaceAllString(strings.ToLower(ln), "")
}

// isPageArtifact recognizes per-page furniture: repeated report titles,
// "Page: N" markers, page fractions ("3 / 13"), bare document-ID tokens,
// and appraisal-office signature boilerplate.
func isPageArtifact(norm string) bool {
	if norm == "" {
		return true
	}
	if pageMarkerRe.MatchString(norm) || pageFractionRe.MatchString(norm) || documentIDRe.MatchString(norm) {
		return true
	}
	for _, marker := range []string{"감정평가요항표", "감정평가사무소", "page:"} {
		if strings.Contains(norm, marker) {
			return true
		}
	}
	return false
}

func optField(fields map[string]string, key string) *string {
	v, ok := fields[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}
