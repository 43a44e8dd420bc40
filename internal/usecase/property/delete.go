package property

import (
	"context"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	"github.com/BruksfildServices01/realty-api/internal/domain/account"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/property"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
)

type DeleteProperty struct {
	repo   domain.Repository
	images *Images
	audit  *audit.Dispatcher
}

func NewDeleteProperty(repo domain.Repository, images *Images, audit *audit.Dispatcher) *DeleteProperty {
	return &DeleteProperty{repo: repo, images: images, audit: audit}
}

// Execute removes the property and its images. Blobs are deleted once the
// rows are gone.
func (uc *DeleteProperty) Execute(ctx context.Context, actor account.Actor, pid string) error {
	var keys []string

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		locked, err := lockByPID(ctx, tx, pid)
		if err != nil {
			return err
		}
		if err := account.Check(actor, account.CapDeleteProperty, account.PropertyTarget(locked)); err != nil {
			return err
		}

		p, err := tx.FindByPID(ctx, pid)
		if err != nil {
			return err
		}
		keys = imageKeys(p)

		return tx.Delete(ctx, p)
	})
	if err != nil {
		return err
	}

	uc.images.remove(ctx, keys)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   audit.ActionPropertyDeleted,
		Entity:   audit.EntityProperty,
		EntityID: pid,
		Metadata: map[string]any{"images": len(keys)},
	})
	return nil
}

type DeletePropertyImage struct {
	repo   domain.Repository
	images *Images
	audit  *audit.Dispatcher
}

func NewDeletePropertyImage(repo domain.Repository, images *Images, audit *audit.Dispatcher) *DeletePropertyImage {
	return &DeletePropertyImage{repo: repo, images: images, audit: audit}
}

func (uc *DeletePropertyImage) Execute(ctx context.Context, actor account.Actor, pid string, imageID uint) error {
	var key string

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		p, err := lockByPID(ctx, tx, pid)
		if err != nil {
			return err
		}
		if err := account.Check(actor, account.CapEditProperty, account.PropertyTarget(p)); err != nil {
			return err
		}

		img, err := tx.FindImage(ctx, p.ID, imageID)
		if notFound(err) {
			return httperr.NotFoundErr("image_not_found", "Image not found.")
		} else if err != nil {
			return err
		}
		key = img.Image

		return tx.DeleteImage(ctx, img)
	})
	if err != nil {
		return err
	}

	if key != "" {
		uc.images.remove(ctx, []string{key})
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   audit.ActionImageDeleted,
		Entity:   audit.EntityProperty,
		EntityID: pid,
		Metadata: map[string]any{"image_id": imageID},
	})
	return nil
}
