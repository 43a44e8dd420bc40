package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Storage keeps image blobs addressed by slash separated keys.
type Storage interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

var ErrInvalidKey = errors.New("invalid storage key")

const (
	propertyImageDir  = "property/images"
	profilePictureDir = "profile_pics/images"
)

// PropertyImageKey is the blob key of image imageID of property pid.
func PropertyImageKey(pid string, imageID uint, ext string) string {
	return path.Join(propertyImageDir, fmt.Sprintf("%s_%d.%s", pid, imageID, ext))
}

func ProfilePictureKey(userID uint, ext string) string {
	return path.Join(profilePictureDir, fmt.Sprintf("%d_%s.%s", userID, uuid.NewString(), ext))
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
