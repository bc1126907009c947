package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/zy091/iwishneed-sub001/internal/model"
)

type AttachmentRepository struct{}

func NewAttachmentRepository() *AttachmentRepository {
	return &AttachmentRepository{}
}

func (r *AttachmentRepository) Create(ctx context.Context, exec sqlx.ExtContext, attachment *model.AttachmentDescriptor) error {
	query := `
		INSERT INTO comment_attachments (comment_id, file_path, file_name, mime_type, size)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := exec.ExecContext(
		ctx,
		query,
		attachment.CommentID,
		attachment.FilePath,
		attachment.FileName,
		attachment.MimeType,
		attachment.Size)

	return err
}
