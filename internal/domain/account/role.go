package account

import "github.com/BruksfildServices01/realty-api/internal/models"

type Role string

const (
	RoleAdmin    Role = models.RoleAdmin
	RoleBroker   Role = models.RoleBroker
	RoleCustomer Role = models.RoleCustomer
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBroker, RoleCustomer:
		return true
	}
	return false
}

// SelfAssignable reports whether a user may pick r when registering.
func (r Role) SelfAssignable() bool {
	return r == RoleBroker || r == RoleCustomer
}
