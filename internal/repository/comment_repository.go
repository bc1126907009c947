package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/zy091/iwishneed-sub001/internal/model"
)

var ErrCommentNotFound = errors.New("комментарий не найден")

type CommentRepository struct{}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

// Create : сохраняет комментарий, возвращает сгенерированный БД id
func (r *CommentRepository) Create(ctx context.Context, exec sqlx.ExtContext, comment *model.Comment) (string, error) {
	query := `
		INSERT INTO comments (requirement_id, content, author_external_id, author_email, parent_id, attachments_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id string
	err := sqlx.GetContext(
		ctx,
		exec,
		&id,
		query,
		comment.RequirementID,
		comment.Content,
		comment.AuthorExternalID,
		comment.AuthorEmail,
		comment.ParentID,
		comment.AttachmentsCount)
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetPublicByID : читает комментарий из публичного представления
func (r *CommentRepository) GetPublicByID(ctx context.Context, exec sqlx.ExtContext, id string) (*model.PublicComment, error) {
	query := `
		SELECT id, requirement_id, content, author_email, parent_id, attachments_count, created_at
		FROM comments_public
		WHERE id = $1
	`
	var comment model.PublicComment
	if err := sqlx.GetContext(ctx, exec, &comment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return &comment, nil
}
