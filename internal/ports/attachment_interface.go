package ports

import (
	"context"

	"github.com/zy091/iwishneed-sub001/internal/model"
)

type AttachmentService interface {
	PresignUploads(ctx context.Context, requirementID string, files []model.FileDeclaration) ([]model.UploadTicket, error)
	PresignDownload(ctx context.Context, caller *model.CallerIdentity, path string) (string, error)
}
