package jobs

import (
	"time"

	"github.com/google/uuid"

	"github.com/doxacleaning/doxa-backend/pkg/db/models"
)

// JobDTO is the transport shape of a job row.
type JobDTO struct {
	ID                uuid.UUID  `json:"id"`
	EmployeeID        uuid.UUID  `json:"employee_id"`
	CustomerID        uuid.UUID  `json:"customer_id"`
	Status            string     `json:"status"`
	ScheduledDate     string     `json:"scheduled_date"`
	ScheduledTime     string     `json:"scheduled_time"`
	EstimatedDuration int        `json:"estimated_duration"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// JobDetailDTO is a job joined with the assigned employee's name and the
// customer's contact and address fields, as returned by the list endpoints.
type JobDetailDTO struct {
	JobDTO
	EmployeeName       string  `json:"employee_name,omitempty"`
	CustomerName       string  `json:"customer_name"`
	CustomerPhone      string  `json:"customer_phone"`
	CustomerStreetAdd1 string  `json:"customer_street_add1"`
	CustomerStreetAdd2 *string `json:"customer_street_add2,omitempty"`
	CustomerCity       string  `json:"customer_city"`
	CustomerState      string  `json:"customer_state"`
	CustomerZipCode    string  `json:"customer_zip_code"`
}

// CreateJobRequest captures the fields required to schedule a job. All fields
// are mandatory, including the initial status.
type CreateJobRequest struct {
	EmployeeID        uuid.UUID `json:"employee_id" validate:"required"`
	CustomerID        uuid.UUID `json:"customer_id" validate:"required"`
	Status            string    `json:"status" validate:"required"`
	ScheduledDate     string    `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime     string    `json:"scheduled_time" validate:"required"`
	EstimatedDuration int       `json:"estimated_duration" validate:"required,gt=0"`
}

// UpdateJobRequest carries a sparse patch; nil fields are left untouched.
type UpdateJobRequest struct {
	EmployeeID        *uuid.UUID `json:"employee_id"`
	CustomerID        *uuid.UUID `json:"customer_id"`
	Status            *string    `json:"status"`
	ScheduledDate     *string    `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime     *string    `json:"scheduled_time"`
	EstimatedDuration *int       `json:"estimated_duration" validate:"omitempty,gt=0"`
}

// Fields maps the supplied patch fields to their column names. An empty map
// means no updatable field was provided.
func (r UpdateJobRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.EmployeeID != nil {
		fields["employee_id"] = *r.EmployeeID
	}
	if r.CustomerID != nil {
		fields["customer_id"] = *r.CustomerID
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.ScheduledDate != nil {
		fields["scheduled_date"] = *r.ScheduledDate
	}
	if r.ScheduledTime != nil {
		fields["scheduled_time"] = *r.ScheduledTime
	}
	if r.EstimatedDuration != nil {
		fields["estimated_duration"] = *r.EstimatedDuration
	}
	return fields
}

func FromModel(j *models.Job) *JobDTO {
	if j == nil {
		return nil
	}

	return &JobDTO{
		ID:                j.ID,
		EmployeeID:        j.EmployeeID,
		CustomerID:        j.CustomerID,
		Status:            j.Status,
		ScheduledDate:     j.ScheduledDate,
		ScheduledTime:     j.ScheduledTime,
		EstimatedDuration: j.EstimatedDuration,
		CompletedAt:       j.CompletedAt,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
}

func (r CreateJobRequest) ToModel() *models.Job {
	return &models.Job{
		EmployeeID:        r.EmployeeID,
		CustomerID:        r.CustomerID,
		Status:            r.Status,
		ScheduledDate:     r.ScheduledDate,
		ScheduledTime:     r.ScheduledTime,
		EstimatedDuration: r.EstimatedDuration,
	}
}
