// internal/models/principal.go
package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is a closed set: Customer, RestaurantOwner and Staff.
type Role interface {
	Name() string
	// Establishment reports the establishment the role acts for, if any.
	Establishment() (uuid.UUID, bool)
	isRole()
}

type Customer struct{}

func (Customer) Name() string                     { return RoleCustomer }
func (Customer) Establishment() (uuid.UUID, bool) { return uuid.Nil, false }
func (Customer) isRole()                          {}

type RestaurantOwner struct {
	EstablishmentID uuid.UUID
}

func (r RestaurantOwner) Name() string                     { return RoleRestaurant }
func (r RestaurantOwner) Establishment() (uuid.UUID, bool) { return r.EstablishmentID, true }
func (RestaurantOwner) isRole()                            {}

type Staff struct {
	EstablishmentID uuid.UUID
}

func (s Staff) Name() string                     { return RoleStaff }
func (s Staff) Establishment() (uuid.UUID, bool) { return s.EstablishmentID, true }
func (Staff) isRole()                            {}

const (
	RoleCustomer   = "customer"
	RoleRestaurant = "restaurant"
	RoleStaff      = "staff"
)

// ParseRole builds a Role from the role name and establishment claim carried
// in an access token.
func ParseRole(name string, establishmentID string) (Role, error) {
	switch name {
	case RoleCustomer, "":
		return Customer{}, nil
	case RoleRestaurant, RoleStaff:
		id, err := uuid.Parse(establishmentID)
		if err != nil {
			return nil, fmt.Errorf("role %s requires an establishment id: %w", name, err)
		}
		if name == RoleRestaurant {
			return RestaurantOwner{EstablishmentID: id}, nil
		}
		return Staff{EstablishmentID: id}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", name)
	}
}

// Principal is the authenticated caller.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

// Manages reports whether the principal may act for the establishment.
func (p Principal) Manages(establishmentID uuid.UUID) bool {
	if p.Role == nil {
		return false
	}
	id, ok := p.Role.Establishment()
	return ok && id == establishmentID
}

// Owns is stricter than Manages: staff members are excluded.
func (p Principal) Owns(establishmentID uuid.UUID) bool {
	owner, ok := p.Role.(RestaurantOwner)
	return ok && owner.EstablishmentID == establishmentID
}
