package importcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"foodgram-backend/domain"
)

// ReadIngredients parses "name,measurement_unit" rows. A leading header row
// with those column names is skipped.
func ReadIngredients(r io.Reader) ([]domain.IngredientRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []domain.IngredientRow
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != 2 {
			return nil, fmt.Errorf("line %d: want 2 columns, got %d", line, len(record))
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}
		rows = append(rows, domain.IngredientRow{Name: record[0], MeasurementUnit: record[1]})
	}
	return rows, nil
}
