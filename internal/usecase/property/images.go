package property

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/realty-api/internal/domain/property"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/imaging"
	"github.com/BruksfildServices01/realty-api/internal/infra/storage"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

const maxImagesPerRequest = 20

// Images turns uploads into stored property images.
type Images struct {
	processor *imaging.Processor
	storage   storage.Storage
	log       logrus.FieldLogger
}

func NewImages(processor *imaging.Processor, st storage.Storage, log logrus.FieldLogger) *Images {
	return &Images{processor: processor, storage: st, log: log}
}

// Prepare decodes every upload up front so a bad file fails the request
// before anything is written.
func (im *Images) Prepare(uploads []io.Reader) ([]*imaging.Result, error) {
	if len(uploads) > maxImagesPerRequest {
		return nil, httperr.Validation("image_files",
			fmt.Sprintf("Ensure this field has no more than %d elements.", maxImagesPerRequest))
	}

	out := make([]*imaging.Result, 0, len(uploads))
	for i, r := range uploads {
		res, err := im.processor.Normalize(r)
		if errors.Is(err, imaging.ErrInvalidImage) {
			return nil, httperr.Validation("image_files",
				fmt.Sprintf("File %d: Upload a valid image. The file you uploaded was either not an image or a corrupted image.", i+1))
		}
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// attach appends images to p inside the transaction bound to repo. Keys of
// blobs already written are appended to uploaded even when it fails.
func (im *Images) attach(
	ctx context.Context,
	repo domain.Repository,
	p *models.Property,
	images []*imaging.Result,
	uploaded *[]string,
) error {
	if len(images) == 0 {
		return nil
	}

	pos, err := repo.NextImagePosition(ctx, p.ID)
	if err != nil {
		return err
	}

	for _, img := range images {
		row := &models.PropertyImage{PropertyID: p.ID, Image: "", Position: pos}
		if err := repo.CreateImage(ctx, row); err != nil {
			return err
		}

		key := storage.PropertyImageKey(p.PID, row.ID, img.Ext)
		if err := im.storage.Put(ctx, key, img.ContentType, img.Data); err != nil {
			return fmt.Errorf("store image %d of %s: %w", row.ID, p.PID, err)
		}
		*uploaded = append(*uploaded, key)

		if err := repo.SetImagePath(ctx, row.ID, key); err != nil {
			return err
		}
		pos++
	}
	return nil
}

// remove deletes blobs. Failures leave orphans behind and are only logged.
func (im *Images) remove(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := im.storage.Delete(ctx, key); err != nil {
			im.log.WithError(err).WithField("key", key).Warn("image cleanup failed")
		}
	}
}

func (im *Images) URL(ctx context.Context, key string) (string, error) {
	return im.storage.URL(ctx, key)
}
