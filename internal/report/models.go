// Package report implements the appraisal-report understanding pipeline:
// text/scan classification, section location by heading search, address and
// appraisal field extraction, and photo extraction.
package report

// AppraisalType discriminates the report family.
type AppraisalType string

const (
	TypeCar     AppraisalType = "car"
	TypeShip    AppraisalType = "ship"
	TypeUnknown AppraisalType = "unknown"
)

// CarFields are the vehicle appraisal sections. A nil field means the report
// had no content under that heading (genuinely absent, not empty).
// Values preserve line breaks; consumers display them as-is.
type CarFields struct {
	YearAndMileage     *string
	Color              *string
	Condition          *string
	Fuel               *string
	InspectionValidity *string
	Etc                *string
}

// ShipFields are the vessel appraisal sections.
type ShipFields struct {
	HullStatus         *string
	EngineStatus       *string
	EquipmentStatus    *string
	OperationInfo      *string
	InspectionLocation *string
	Etc                *string
}

// AppraisalFields is a tagged variant: exactly the variant named by Type is
// populated, the other is always nil. TypeUnknown carries neither.
type AppraisalFields struct {
	Type AppraisalType
	Car  *CarFields
	Ship *ShipFields
}

// UnknownAppraisal is the result when no appraisal section is found.
func UnknownAppraisal() AppraisalFields {
	return AppraisalFields{Type: TypeUnknown}
}

// Classification is the text-based / scanned decision, derived once per
// document.
type Classification struct {
	TextBased bool
}

// PhotoRegion records one accepted and rendered image block.
type PhotoRegion struct {
	PageIndex int
	Width     int // source raster width in pixels
	Height    int // source raster height in pixels
	Path      string
}

// ExtractionResult is the per-document output handed to the caller. The
// pipeline holds no reference to it after returning.
type ExtractionResult struct {
	PDFFilename     string
	LocationAddress string // empty when no valid address was found
	Appraisal       AppraisalFields
	PhotoCount      int
	TextBased       bool
	TotalPages      int
}
