package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscription means Subscriber follows Author's recipes.
type Subscription struct {
	AuthorID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubscriberID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt    time.Time `gorm:"type:timestamp;not null"`

	Author     *User `gorm:"foreignKey:AuthorID"`
	Subscriber *User `gorm:"foreignKey:SubscriberID"`
}
