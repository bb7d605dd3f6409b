package constants

// SectionKind identifies a semantically meaningful region of an appraisal report.
type SectionKind string

const (
	SectionAppraisal SectionKind = "appraisal"
	SectionAddress   SectionKind = "address"
	SectionPhotos    SectionKind = "photos"
)

// HeadingSynonyms maps each section kind to the heading phrasings observed in
// court-auction appraisal reports. Offices (and report generations) space the
// same heading differently, so spaced variants are listed verbatim. Matching
// is exact substring search against raw page text.
//
// These tables are process-wide data: loaded once, never mutated.
var HeadingSynonyms = map[SectionKind][]string{
	SectionAppraisal: {
		"감정평가요항표",
		"감정평가 요항표",
		"자동차감정평가요항표",
		"자동차 감정평가요항표",
		"자동차 감정평가 요항표",
		"감정평가 요항 표",
		"선박감정평가요항표",
		"선박 감정평가요항표",
		"선박 감정평가 요항표",
	},
	SectionAddress: {
		"위치도",
		"위 치 도",
		"상세위치도",
		"상 세 위 치 도",
		"광역위치도",
		"광 역 위 치 도",
		"소재지",
		"소 재 지",
		"보관장소",
		"보관 장소",
		"차량보관장소",
		"차량 보관장소",
	},
	SectionPhotos: {
		"사진용지",
		"사 진 용 지",
	},
}
