package constants

// Keyword tables for address candidate extraction. Collected empirically from
// vehicle and vessel appraisal reports; matching is substring-based because
// report text is space-mangled by PDF extraction.

// AddressLabels introduce an address value on the same or the following line
// ("storage place", "location of subject").
var AddressLabels = []string{
	"소재지", "소 재 지",
	"보관장소", "보관 장소",
	"차량보관장소", "차량 보관장소",
}

// LocationLabels is the looser label set used by the document-wide fallback.
var LocationLabels = []string{"보관장소", "소재지", "위치", "장소"}

// AdminDivisions are the top-level administrative division markers a
// Korean address starts with (province, metropolitan city, county, ...).
var AdminDivisions = []string{
	"특별시", "광역시", "특별자치시", "특별자치도", "도", "시", "군", "구",
}

// AddressUnits are the fine-grained unit markers (town, village, road,
// lot number) that distinguish a full address from a bare region name.
var AddressUnits = []string{"읍", "면", "동", "리", "로", "길", "번지"}

// AddressContinuations mark lines that extend a multi-line address
// (building, parking structure, and the unit markers themselves).
var AddressContinuations = []string{
	"읍", "면", "동", "리", "로", "길", "번지",
	"주차장", "빌딩", "센터", "타워",
}

// AddressStopTerms disqualify a line as an address candidate: registration
// boilerplate, court and appraisal-office phrases, market-price disclaimers.
var AddressStopTerms = []string{
	"자동차", "차량", "등록", "번호", "법원", "경매", "감정평가", "사무소",
	"과거", "해당", "위치도", "위 치 도", "원 내외로", "게시되어", "시세",
	"매매", "사이트",
}

// FallbackStopTerms is the shorter exclusion list applied by the
// document-wide scored fallback.
var FallbackStopTerms = []string{
	"자동차", "차량", "등록", "번호", "법원", "경매", "감정평가", "사무소",
	"과거", "해당",
}
