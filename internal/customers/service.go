package customers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doxacleaning/doxa-backend/pkg/db"
	pkgerrors "github.com/doxacleaning/doxa-backend/pkg/errors"
)

const customerNotFoundMessage = "customer not found"

// Service defines the behavior needed by the customers controllers.
type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*CustomerDTO, error)
	List(ctx context.Context) ([]*CustomerDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
}

type service struct {
	db *db.Client
}

// ServiceParams bundles the dependencies required to build a customers service.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs a customers service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: params.DB}, nil
}

func (s *service) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerDTO, error) {
	repo := NewRepository(s.db.DB())
	customer, err := repo.Create(ctx, req.ToModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
	}
	return FromModel(customer), nil
}

func (s *service) List(ctx context.Context) ([]*CustomerDTO, error) {
	repo := NewRepository(s.db.DB())
	customers, err := repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}

	dtos := make([]*CustomerDTO, 0, len(customers))
	for i := range customers {
		dtos = append(dtos, FromModel(&customers[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	repo := NewRepository(s.db.DB())
	return s.load(ctx, repo, id)
}

// Update applies a sparse patch. An empty patch is rejected before touching the
// store so the row's updated_at is not bumped by a no-op.
func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerDTO, error) {
	fields := req.Fields()
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no fields provided to update")
	}

	var updated *CustomerDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		affected, err := repo.UpdateFields(ctx, id, fields)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer")
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

// Delete removes the customer and returns the pre-delete snapshot.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	var snapshot *CustomerDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		dto, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete customer")
		}
		snapshot = dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *service) load(ctx context.Context, repo *Repository, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, customerNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}
	return FromModel(customer), nil
}
