package property

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/realty-api/internal/domain/property"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

func errPropertyNotFound() error {
	return httperr.NotFoundErr("property_not_found", "Not found.")
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func lockByPID(ctx context.Context, repo domain.Repository, pid string) (*models.Property, error) {
	p, err := repo.FindByPIDForUpdate(ctx, pid)
	if notFound(err) {
		return nil, errPropertyNotFound()
	}
	return p, err
}

func imageKeys(p *models.Property) []string {
	keys := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img.Image != "" {
			keys = append(keys, img.Image)
		}
	}
	return keys
}
