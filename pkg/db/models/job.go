package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job is a scheduled cleaning visit assigned to an employee at a customer site.
// Status is an open string column; completed_at is written only by the
// completion operation. ScheduledDate is YYYY-MM-DD text, so an ascending sort
// is chronological.
type Job struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID        uuid.UUID  `gorm:"type:uuid;column:employee_id;not null;index"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;column:customer_id;not null;index"`
	Status            string     `gorm:"not null"`
	ScheduledDate     string     `gorm:"column:scheduled_date;not null"`
	ScheduledTime     string     `gorm:"column:scheduled_time;not null"`
	EstimatedDuration int        `gorm:"column:estimated_duration;not null"`
	CompletedAt       *time.Time `gorm:"column:completed_at"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
