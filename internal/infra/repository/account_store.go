package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/realty-api/internal/domain/account"
)

type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Users() account.UserRepository {
	return NewUserGormRepository(s.db)
}

func (s *AccountStore) Tokens() account.TokenRepository {
	return NewTokenGormRepository(s.db)
}

func (s *AccountStore) Transaction(ctx context.Context, fn func(tx account.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AccountStore{db: tx})
	})
}

var _ account.Store = (*AccountStore)(nil)
