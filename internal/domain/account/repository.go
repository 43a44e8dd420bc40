package account

import (
	"context"

	"github.com/BruksfildServices01/realty-api/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	ExistsUsername(ctx context.Context, username string, exceptID uint) (bool, error)
	ExistsDigitalID(ctx context.Context, digitalID string, exceptID uint) (bool, error)
	List(ctx context.Context, limit, offset int) ([]models.User, int64, error)
	// Delete removes the user, its token and detaches owned properties.
	Delete(ctx context.Context, u *models.User) error
}

type TokenRepository interface {
	// GetOrCreate returns the user's live token or stores the one produced
	// by issue. At most one token row exists per user.
	GetOrCreate(ctx context.Context, userID uint, issue func() (*models.AuthToken, error)) (*models.AuthToken, bool, error)
	// Replace drops every token of the user and stores tok.
	Replace(ctx context.Context, tok *models.AuthToken) (revoked []string, err error)
	FindByKey(ctx context.Context, key string) (*models.AuthToken, error)
	DeleteByKey(ctx context.Context, key string) error
	KeysForUser(ctx context.Context, userID uint) ([]string, error)
}

// Store groups the account repositories so several writes can share one
// transaction.
type Store interface {
	Users() UserRepository
	Tokens() TokenRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
