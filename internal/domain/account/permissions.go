package account

import (
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

type Capability int

const (
	CapViewUser Capability = iota + 1
	CapManageUser
	CapDeleteUser
	CapEditProperty
	CapDeleteProperty
	CapViewAuditLog
)

// Actor is who performs an operation.
type Actor struct {
	UserID    uint
	Role      Role
	Superuser bool
}

func ActorOf(u *models.User) Actor {
	return Actor{UserID: u.ID, Role: Role(u.Role), Superuser: u.IsSuperuser}
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Superuser
}

// Target describes the entity an operation touches. OwnerID is the owner of
// a property (nil once its owner is gone).
type Target struct {
	UserID    uint
	Superuser bool
	OwnerID   *uint
}

func UserTarget(u *models.User) Target {
	return Target{UserID: u.ID, Superuser: u.IsSuperuser}
}

func PropertyTarget(p *models.Property) Target {
	return Target{OwnerID: p.UserID}
}

// Check returns nil when actor holds cap over target, otherwise a
// permission error.
func Check(actor Actor, cap Capability, target Target) error {
	switch cap {
	case CapViewUser, CapManageUser, CapViewAuditLog:
		if actor.IsAdmin() {
			return nil
		}
		return errAdminOnly

	case CapDeleteUser:
		if !actor.IsAdmin() {
			return errAdminOnly
		}
		if target.UserID == actor.UserID {
			return httperr.Permission("cannot_delete_self", "You cannot delete your own admin account.")
		}
		if target.Superuser {
			return httperr.Permission("cannot_delete_superuser", "Superusers cannot be deleted via this API.")
		}
		return nil

	case CapEditProperty, CapDeleteProperty:
		if actor.IsAdmin() {
			return nil
		}
		if target.OwnerID != nil && *target.OwnerID == actor.UserID {
			return nil
		}
		return httperr.Permission("not_owner", "You do not have permission to modify this property.")
	}

	return httperr.Permission("forbidden", "You do not have permission to perform this action.")
}

var errAdminOnly = httperr.Permission("admin_only", "You do not have permission to perform this action.")
