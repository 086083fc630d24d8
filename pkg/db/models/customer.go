package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a service location and its contact details.
type Customer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"not null"`
	StreetAdd1 string    `gorm:"column:street_add1;not null"`
	StreetAdd2 *string   `gorm:"column:street_add2"`
	City       string    `gorm:"not null"`
	State      string    `gorm:"not null"`
	ZipCode    string    `gorm:"column:zip_code;not null"`
	Phone      string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
