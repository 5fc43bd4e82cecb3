package property

import (
	"github.com/kostman/backend/internal/domain/shared"
)

// Tenant is a person renting a room. Contact details live here; the room
// holds the tenancy itself.
type Tenant struct {
	shared.BaseAggregateRoot
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	IDNumber string `json:"id_number"`
	Notes    string `json:"notes"`
}

// NewTenant creates a tenant
func NewTenant(name, phone, idNumber, notes string) (*Tenant, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		IDNumber:          idNumber,
		Notes:             notes,
	}, nil
}

// Update replaces the tenant details
func (t *Tenant) Update(name, phone, idNumber, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	t.Name = name
	t.Phone = phone
	t.IDNumber = idNumber
	t.Notes = notes
	t.IncrementVersion()
	return nil
}
