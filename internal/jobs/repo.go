package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doxacleaning/doxa-backend/pkg/db/models"
)

// joinedJobRow is the flat scan target for the list queries. Columns shared
// between the joined tables are aliased to keep the select unambiguous.
type joinedJobRow struct {
	ID                 uuid.UUID  `gorm:"column:id"`
	EmployeeID         uuid.UUID  `gorm:"column:employee_id"`
	CustomerID         uuid.UUID  `gorm:"column:customer_id"`
	Status             string     `gorm:"column:status"`
	ScheduledDate      string     `gorm:"column:scheduled_date"`
	ScheduledTime      string     `gorm:"column:scheduled_time"`
	EstimatedDuration  int        `gorm:"column:estimated_duration"`
	CompletedAt        *time.Time `gorm:"column:completed_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	EmployeeName       string     `gorm:"column:employee_name"`
	CustomerName       string     `gorm:"column:customer_name"`
	CustomerPhone      string     `gorm:"column:customer_phone"`
	CustomerStreetAdd1 string     `gorm:"column:customer_street_add1"`
	CustomerStreetAdd2 *string    `gorm:"column:customer_street_add2"`
	CustomerCity       string     `gorm:"column:customer_city"`
	CustomerState      string     `gorm:"column:customer_state"`
	CustomerZipCode    string     `gorm:"column:customer_zip_code"`
}

const customerJoinColumns = "customers.name AS customer_name, " +
	"customers.phone AS customer_phone, " +
	"customers.street_add1 AS customer_street_add1, " +
	"customers.street_add2 AS customer_street_add2, " +
	"customers.city AS customer_city, " +
	"customers.state AS customer_state, " +
	"customers.zip_code AS customer_zip_code"

// Repository exposes job persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a jobs repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new job and returns the persisted model.
func (r *Repository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// ListAll returns every job joined with the employee name and the customer
// contact/address fields, soonest first.
func (r *Repository) ListAll(ctx context.Context) ([]joinedJobRow, error) {
	var rows []joinedJobRow
	err := r.db.WithContext(ctx).
		Table("jobs").
		Select("jobs.*, users.name AS employee_name, " + customerJoinColumns).
		Joins("JOIN users ON users.id = jobs.employee_id").
		Joins("JOIN customers ON customers.id = jobs.customer_id").
		Order("jobs.scheduled_date ASC, jobs.scheduled_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByEmployee returns one employee's jobs joined with the customer fields,
// soonest first.
func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]joinedJobRow, error) {
	var rows []joinedJobRow
	err := r.db.WithContext(ctx).
		Table("jobs").
		Select("jobs.*, "+customerJoinColumns).
		Joins("JOIN customers ON customers.id = jobs.customer_id").
		Where("jobs.employee_id = ?", employeeID).
		Order("jobs.scheduled_date ASC, jobs.scheduled_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a job by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateFields applies the supplied column map to a job row. The count of
// affected rows distinguishes a missing row from a no-op.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// Delete removes a job row by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id).Error
}

func (row joinedJobRow) toDetailDTO() *JobDetailDTO {
	return &JobDetailDTO{
		JobDTO: JobDTO{
			ID:                row.ID,
			EmployeeID:        row.EmployeeID,
			CustomerID:        row.CustomerID,
			Status:            row.Status,
			ScheduledDate:     row.ScheduledDate,
			ScheduledTime:     row.ScheduledTime,
			EstimatedDuration: row.EstimatedDuration,
			CompletedAt:       row.CompletedAt,
			CreatedAt:         row.CreatedAt,
			UpdatedAt:         row.UpdatedAt,
		},
		EmployeeName:       row.EmployeeName,
		CustomerName:       row.CustomerName,
		CustomerPhone:      row.CustomerPhone,
		CustomerStreetAdd1: row.CustomerStreetAdd1,
		CustomerStreetAdd2: row.CustomerStreetAdd2,
		CustomerCity:       row.CustomerCity,
		CustomerState:      row.CustomerState,
		CustomerZipCode:    row.CustomerZipCode,
	}
}
