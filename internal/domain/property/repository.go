package property

import (
	"context"

	"github.com/BruksfildServices01/realty-api/internal/models"
)

type ListFilter struct {
	Action  Action
	Type    Type
	Status  Status
	OwnerID *uint
	Limit   int
	Offset  int
}

type Repository interface {
	// Transaction runs fn against a repository bound to one transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Sequence --------
	NextSequence(ctx context.Context, t Type) (int64, error)

	// -------- Property --------
	Create(ctx context.Context, p *models.Property) error
	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, p *models.Property) error
	FindByPID(ctx context.Context, pid string) (*models.Property, error)
	FindByPIDForUpdate(ctx context.Context, pid string) (*models.Property, error)
	List(ctx context.Context, f ListFilter) ([]models.Property, int64, error)

	// -------- Images --------
	CreateImage(ctx context.Context, img *models.PropertyImage) error
	SetImagePath(ctx context.Context, imageID uint, path string) error
	NextImagePosition(ctx context.Context, propertyID uint) (int, error)
	FindImage(ctx context.Context, propertyID, imageID uint) (*models.PropertyImage, error)
	DeleteImage(ctx context.Context, img *models.PropertyImage) error
}
