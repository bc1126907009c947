package ports

import (
	"context"
	"time"

	"github.com/zy091/iwishneed-sub001/internal/model"
)

// S3Storage : подпись URL объектного хранилища
type S3Storage interface {
	CreateSignedUploadURL(ctx context.Context, key string, expire time.Duration) (*model.UploadTicket, error)
	CreateSignedDownloadURL(ctx context.Context, key string, expire time.Duration) (string, error)
}
