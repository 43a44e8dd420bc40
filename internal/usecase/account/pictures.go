package account

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/imaging"
	"github.com/BruksfildServices01/realty-api/internal/infra/storage"
)

// Pictures stores profile pictures.
type Pictures struct {
	images  *imaging.Processor
	storage storage.Storage
	log     logrus.FieldLogger
}

func NewPictures(images *imaging.Processor, st storage.Storage, log logrus.FieldLogger) *Pictures {
	return &Pictures{images: images, storage: st, log: log}
}

func (p *Pictures) Prepare(r io.Reader) (*imaging.Result, error) {
	res, err := p.images.Normalize(r)
	if errors.Is(err, imaging.ErrInvalidImage) {
		return nil, httperr.Validation("profile_picture",
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	return res, err
}

func (p *Pictures) Put(ctx context.Context, userID uint, img *imaging.Result) (string, error) {
	key := storage.ProfilePictureKey(userID, img.Ext)
	if err := p.storage.Put(ctx, key, img.ContentType, img.Data); err != nil {
		return "", err
	}
	return key, nil
}

func (p *Pictures) Discard(ctx context.Context, key *string) {
	if p == nil || key == nil || *key == "" {
		return
	}
	if err := p.storage.Delete(ctx, *key); err != nil {
		p.log.WithError(err).WithField("key", *key).Warn("profile picture cleanup failed")
	}
}
