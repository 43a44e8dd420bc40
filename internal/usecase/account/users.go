package account

import (
	"context"

	domain "github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

type ListUsers struct {
	users domain.UserRepository
}

func NewListUsers(users domain.UserRepository) *ListUsers {
	return &ListUsers{users: users}
}

func (uc *ListUsers) Execute(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return uc.users.List(ctx, limit, offset)
}

type GetUser struct {
	users domain.UserRepository
}

func NewGetUser(users domain.UserRepository) *GetUser {
	return &GetUser{users: users}
}

func (uc *GetUser) Execute(ctx context.Context, actor domain.Actor, id uint) (*models.User, error) {
	if err := domain.Check(actor, domain.CapViewUser, domain.Target{UserID: id}); err != nil {
		return nil, err
	}

	u, err := uc.users.FindByID(ctx, id)
	if notFound(err) {
		return nil, errUserNotFound()
	}
	return u, err
}
