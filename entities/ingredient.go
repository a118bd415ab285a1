package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is reference data. Duplicates are only prevented by the CSV
// importer's get-or-create on (name, measurement_unit).
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null;index" json:"name"`
	MeasurementUnit string    `gorm:"size:30;not null" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}
