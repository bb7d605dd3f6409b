package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Summary is the on-disk metadata.json document. The field set is stable:
// every appraisal key is present for every report family, with null for
// sections the report did not carry, so downstream consumers never branch on
// key presence.
type Summary struct {
	PDFFilename     string           `json:"pdf_filename"`
	LocationAddress *string          `json:"location_address"`
	Appraisal       SummaryAppraisal `json:"appraisal"`
	Metadata        SummaryMetadata  `json:"metadata"`
}

type SummaryAppraisal struct {
	Type               string  `json:"type"`
	YearAndMileage     *string `json:"year_and_mileage"`
	Color              *string `json:"color"`
	Condition          *string `json:"condition"`
	Fuel               *string `json:"fuel"`
	InspectionValidity *string `json:"inspection_validity"`
	Etc                *string `json:"etc"`
	HullStatus         *string `json:"hull_status"`
	EngineStatus       *string `json:"engine_status"`
	EquipmentStatus    *string `json:"equipment_status"`
	OperationInfo      *string `json:"operation_info"`
	InspectionLocation *string `json:"inspection_location"`
	ShipEtc            *string `json:"ship_etc"`
}

type SummaryMetadata struct {
	TotalPhotoCount int  `json:"total_photo_count"`
	IsTextBased     bool `json:"is_text_based"`
	TotalPages      int  `json:"total_pages"`
}

// NewSummary flattens an extraction result into the stable wire shape.
func NewSummary(res *ExtractionResult) Summary {
	s := Summary{
		PDFFilename: res.PDFFilename,
		Appraisal:   SummaryAppraisal{Type: string(res.Appraisal.Type)},
		Metadata: SummaryMetadata{
			TotalPhotoCount: res.PhotoCount,
			IsTextBased:     res.TextBased,
			TotalPages:      res.TotalPages,
		},
	}
	if res.LocationAddress != "" {
		addr := res.LocationAddress
		s.LocationAddress = &addr
	}
	if car := res.Appraisal.Car; car != nil {
		s.Appraisal.YearAndMileage = car.YearAndMileage
		s.Appraisal.Color = car.Color
		s.Appraisal.Condition = car.Condition
		s.Appraisal.Fuel = car.Fuel
		s.Appraisal.InspectionValidity = car.InspectionValidity
		s.Appraisal.Etc = car.Etc
	}
	if ship := res.Appraisal.Ship; ship != nil {
		s.Appraisal.HullStatus = ship.HullStatus
		s.Appraisal.EngineStatus = ship.EngineStatus
		s.Appraisal.EquipmentStatus = ship.EquipmentStatus
		s.Appraisal.OperationInfo = ship.OperationInfo
		s.Appraisal.InspectionLocation = ship.InspectionLocation
		s.Appraisal.ShipEtc = ship.Etc
	}
	return s
}

// BuildSummaryJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map, used locally to validate metadata.json before it is written.
func BuildSummaryJSONSchema() map[string]any {
	appraisalProps := map[string]any{
		"type": map[string]any{
			"type": "string",
			"enum": []string{string(TypeCar), string(TypeShip), string(TypeUnknown)},
		},
	}
	for _, key := range []string{
		"year_and_mileage", "color", "condition", "fuel",
		"inspection_validity", "etc",
		"hull_status", "engine_status", "equipment_status",
		"operation_info", "inspection_location", "ship_etc",
	} {
		appraisalProps[key] = nullableString()
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"pdf_filename":     map[string]any{"type": "string", "minLength": 1},
			"location_address": nullableString(),
			"appraisal": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           appraisalProps,
				"required":             []string{"type"},
			},
			"metadata": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"total_photo_count": map[string]any{"type": "integer", "minimum": 0},
					"is_text_based":     map[string]any{"type": "boolean"},
					"total_pages":       map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []string{"total_photo_count", "is_text_based", "total_pages"},
			},
		},
		"required": []string{"pdf_filename", "location_address", "appraisal", "metadata"},
	}
}

func nullableString() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}

// ValidateSummaryJSON validates serialized metadata.json bytes against the
// embedded schema.
func ValidateSummaryJSON(data []byte) error {
	b, err := json.Marshal(BuildSummaryJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// WriteSummary serializes, validates, and writes metadata.json under
// outputRoot, returning the file path.
func WriteSummary(res *ExtractionResult, outputRoot string) (string, error) {
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(NewSummary(res), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	if err := ValidateSummaryJSON(data); err != nil {
		return "", fmt.Errorf("summary validation: %w", err)
	}
	path := filepath.Join(outputRoot, "metadata.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}
