package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doxacleaning/doxa-backend/internal/customers"
	"github.com/doxacleaning/doxa-backend/internal/users"
	"github.com/doxacleaning/doxa-backend/pkg/db"
	"github.com/doxacleaning/doxa-backend/pkg/enums"
	pkgerrors "github.com/doxacleaning/doxa-backend/pkg/errors"
)

const jobNotFoundMessage = "job not found"

// Service defines the behavior needed by the jobs controllers.
type Service interface {
	Create(ctx context.Context, req CreateJobRequest) (*JobDTO, error)
	List(ctx context.Context) ([]*JobDetailDTO, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*JobDetailDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateJobRequest) (*JobDTO, error)
	Complete(ctx context.Context, id uuid.UUID) (*JobDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*JobDTO, error)
}

type service struct {
	db *db.Client
}

// ServiceParams bundles the dependencies required to build a jobs service.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs a jobs service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: params.DB}, nil
}

// Create validates the referenced employee and customer before inserting, so a
// bad reference surfaces as a validation error rather than a store failure.
func (s *service) Create(ctx context.Context, req CreateJobRequest) (*JobDTO, error) {
	if err := s.checkReferences(ctx, s.db.DB(), &req.EmployeeID, &req.CustomerID); err != nil {
		return nil, err
	}

	repo := NewRepository(s.db.DB())
	job, err := repo.Create(ctx, req.ToModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create job")
	}
	return FromModel(job), nil
}

func (s *service) List(ctx context.Context) ([]*JobDetailDTO, error) {
	repo := NewRepository(s.db.DB())
	rows, err := repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list jobs")
	}
	return toDetailDTOs(rows), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*JobDetailDTO, error) {
	repo := NewRepository(s.db.DB())
	rows, err := repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list jobs by employee")
	}
	return toDetailDTOs(rows), nil
}

// Update applies a sparse patch. An empty patch is rejected before touching the
// store, and reassignments are checked against the referenced tables.
func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateJobRequest) (*JobDTO, error) {
	fields := req.Fields()
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no fields provided to update")
	}

	var updated *JobDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.checkReferences(ctx, tx, req.EmployeeID, req.CustomerID); err != nil {
			return err
		}

		repo := NewRepository(tx)
		affected, err := repo.UpdateFields(ctx, id, fields)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update job")
		}
		if affected == 0 {
			if _, err := s.load(ctx, repo, id); err != nil {
				return err
			}
		}

		updated, err = s.load(ctx, repo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Complete unconditionally marks the job completed and stamps completed_at
// with the current time, whatever the prior status. Calling it again refreshes
// the stamp.
func (s *service) Complete(ctx context.Context, id uuid.UUID) (*JobDTO, error) {
	now := time.Now().UTC()

	var completed *JobDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		affected, err := repo.UpdateFields(ctx, id, map[string]any{
			"status":       enums.JobStatusCompleted.String(),
			"completed_at": now,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "complete job")
		}
		if affected == 0 {
			if _, err := s.load(ctx, repo, id); err != nil {
				return err
			}
		}

		completed, err = s.load(ctx, repo, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// Delete removes the job and returns the pre-delete snapshot.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*JobDTO, error) {
	var snapshot *JobDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		dto, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete job")
		}
		snapshot = dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *service) load(ctx context.Context, repo *Repository, id uuid.UUID) (*JobDTO, error) {
	job, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, jobNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load job")
	}
	return FromModel(job), nil
}

func (s *service) checkReferences(ctx context.Context, conn *gorm.DB, employeeID, customerID *uuid.UUID) error {
	if employeeID != nil {
		exists, err := users.NewRepository(conn).ExistsByID(ctx, *employeeID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check employee")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeValidation, "employee_id does not reference a known user")
		}
	}
	if customerID != nil {
		exists, err := customers.NewRepository(conn).ExistsByID(ctx, *customerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check customer")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeValidation, "customer_id does not reference a known customer")
		}
	}
	return nil
}

func toDetailDTOs(rows []joinedJobRow) []*JobDetailDTO {
	dtos := make([]*JobDetailDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, rows[i].toDetailDTO())
	}
	return dtos
}
