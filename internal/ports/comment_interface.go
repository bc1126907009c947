package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/zy091/iwishneed-sub001/internal/model"
)

// CommentRepository : SQL слой комментариев
type CommentRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, comment *model.Comment) (string, error)
	GetPublicByID(ctx context.Context, exec sqlx.ExtContext, id string) (*model.PublicComment, error)
}

// AttachmentRepository : SQL слой описаний вложений
type AttachmentRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, attachment *model.AttachmentDescriptor) error
}

type CommentService interface {
	AddComment(ctx context.Context, caller *model.CallerIdentity, input *model.NewComment) (*model.PublicComment, error)
}
