// internal/output/json.go
package output

import (
	"encoding/json"
	"os"

	"github.com/law-makers/courtdata/pkg/models"
)

// RenderJSON marshals the record for machine consumers. Raw markup is
// excluded by the model's field tags; everything else round-trips.
func RenderJSON(rec *models.CaseRecord) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// SaveJSON writes the JSON export to filepath.
func SaveJSON(rec *models.CaseRecord, filepath string) error {
	content, err := RenderJSON(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}
