package property

import (
	"context"

	domain "github.com/BruksfildServices01/realty-api/internal/domain/property"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

type GetProperty struct {
	repo domain.Repository
}

func NewGetProperty(repo domain.Repository) *GetProperty {
	return &GetProperty{repo: repo}
}

func (uc *GetProperty) Execute(ctx context.Context, pid string) (*models.Property, error) {
	p, err := uc.repo.FindByPID(ctx, pid)
	if notFound(err) {
		return nil, errPropertyNotFound()
	}
	return p, err
}

type ListProperties struct {
	repo domain.Repository
}

func NewListProperties(repo domain.Repository) *ListProperties {
	return &ListProperties{repo: repo}
}

// Execute lists properties matching f, oldest first.
func (uc *ListProperties) Execute(ctx context.Context, f domain.ListFilter) ([]models.Property, int64, error) {
	fe := httperr.FieldErrors{}
	if f.Action != "" && !f.Action.Valid() {
		fe.Add("action", "Must be one of Ongoing, Sold.")
	}
	if f.Type != "" && !f.Type.Valid() {
		fe.Add("property_type", "Must be one of House, Apartment, Land.")
	}
	if f.Status != "" && f.Status != domain.StatusActive && f.Status != domain.StatusPending {
		fe.Add("status", "Must be one of Pending, Active.")
	}
	if err := fe.Err(); err != nil {
		return nil, 0, err
	}

	return uc.repo.List(ctx, f)
}

// ListByAction is List restricted to one action (Ongoing or Sold).
func (uc *ListProperties) ListByAction(
	ctx context.Context,
	action domain.Action,
	limit, offset int,
) ([]models.Property, int64, error) {
	return uc.Execute(ctx, domain.ListFilter{Action: action, Limit: limit, Offset: offset})
}
