package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/doxacleaning/doxa-backend/pkg/db/models"
)

// CustomerDTO is the transport shape of a customer record.
type CustomerDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	StreetAdd1 string    `json:"street_add1"`
	StreetAdd2 *string   `json:"street_add2,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	ZipCode    string    `json:"zip_code"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCustomerRequest captures the fields required to add a customer.
type CreateCustomerRequest struct {
	Name       string  `json:"name" validate:"required"`
	StreetAdd1 string  `json:"street_add1" validate:"required"`
	StreetAdd2 *string `json:"street_add2"`
	City       string  `json:"city" validate:"required"`
	State      string  `json:"state" validate:"required"`
	ZipCode    string  `json:"zip_code" validate:"required"`
	Phone      string  `json:"phone" validate:"required"`
}

// UpdateCustomerRequest carries a sparse patch; nil fields are left untouched.
type UpdateCustomerRequest struct {
	Name       *string `json:"name"`
	StreetAdd1 *string `json:"street_add1"`
	StreetAdd2 *string `json:"street_add2"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	ZipCode    *string `json:"zip_code"`
	Phone      *string `json:"phone"`
}

// Fields maps the supplied patch fields to their column names. An empty map
// means no updatable field was provided.
func (r UpdateCustomerRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.StreetAdd1 != nil {
		fields["street_add1"] = *r.StreetAdd1
	}
	if r.StreetAdd2 != nil {
		fields["street_add2"] = *r.StreetAdd2
	}
	if r.City != nil {
		fields["city"] = *r.City
	}
	if r.State != nil {
		fields["state"] = *r.State
	}
	if r.ZipCode != nil {
		fields["zip_code"] = *r.ZipCode
	}
	if r.Phone != nil {
		fields["phone"] = *r.Phone
	}
	return fields
}

func FromModel(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}

	return &CustomerDTO{
		ID:         c.ID,
		Name:       c.Name,
		StreetAdd1: c.StreetAdd1,
		StreetAdd2: c.StreetAdd2,
		City:       c.City,
		State:      c.State,
		ZipCode:    c.ZipCode,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (r CreateCustomerRequest) ToModel() *models.Customer {
	return &models.Customer{
		Name:       r.Name,
		StreetAdd1: r.StreetAdd1,
		StreetAdd2: r.StreetAdd2,
		City:       r.City,
		State:      r.State,
		ZipCode:    r.ZipCode,
		Phone:      r.Phone,
	}
}
