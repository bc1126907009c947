package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/zy091/iwishneed-sub001/internal/model"
	"github.com/zy091/iwishneed-sub001/internal/ports"
	"github.com/zy091/iwishneed-sub001/internal/util"
)

var attachmentWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "gateway_attachment_write_failures_total",
	Help: "Описания вложений, которые не удалось сохранить после всех попыток",
})

const attachmentRetryDelay = 100 * time.Millisecond

type CommentService struct {
	db                   sqlx.ExtContext
	commentRepository    ports.CommentRepository
	attachmentRepository ports.AttachmentRepository
	writeAttempts        int
}

func NewCommentService(
	db sqlx.ExtContext,
	commentRepository ports.CommentRepository,
	attachmentRepository ports.AttachmentRepository,
	writeAttempts int,
) *CommentService {
	if writeAttempts < 1 {
		writeAttempts = 1
	}
	return &CommentService{
		db:                   db,
		commentRepository:    commentRepository,
		attachmentRepository: attachmentRepository,
		writeAttempts:        writeAttempts,
	}
}

// AddComment : сохраняет комментарий от имени caller, затем описания вложений
// и возвращает публичное представление.
// attachments_count равен числу заявленных вложений, а не числу сохранённых.
func (s *CommentService) AddComment(ctx context.Context, caller *model.CallerIdentity, input *model.NewComment) (*model.PublicComment, error) {
	if caller == nil || caller.ID == "" {
		return nil, errors.New("[CommentService] личность вызывающего не определена")
	}
	if input == nil || strings.TrimSpace(input.RequirementID) == "" {
		return nil, validationError("отсутствует requirement_id")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, validationError("отсутствует content")
	}

	parentID := input.ParentID
	if parentID != nil && strings.TrimSpace(*parentID) == "" {
		parentID = nil
	}

	comment := &model.Comment{
		RequirementID:    input.RequirementID,
		Content:          input.Content,
		AuthorExternalID: caller.ID,
		AuthorEmail:      caller.Email,
		ParentID:         parentID,
		AttachmentsCount: len(input.Attachments),
	}

	commentID, err := s.commentRepository.Create(ctx, s.db, comment)
	if err != nil {
		return nil, util.LogError("[CommentService] не удалось сохранить комментарий", err)
	}

	s.writeAttachments(ctx, commentID, input.Attachments)

	public, err := s.commentRepository.GetPublicByID(ctx, s.db, commentID)
	if err != nil {
		// комментарий уже сохранён, повтор запроса клиентом создаст дубликат
		zap.L().Error("[CommentService] комментарий сохранён, но не прочитан из представления",
			zap.String("comment_id", commentID),
			zap.Error(err),
		)
		return nil, util.LogError("[CommentService] не удалось прочитать комментарий", err)
	}

	return public, nil
}

// writeAttachments : ошибки не прерывают операцию и не возвращаются клиенту
func (s *CommentService) writeAttachments(ctx context.Context, commentID string, attachments []model.AttachmentInput) {
	for _, attachment := range attachments {
		descriptor := &model.AttachmentDescriptor{
			CommentID: commentID,
			FilePath:  attachment.Path,
			FileName:  attachment.Name,
			MimeType:  attachment.Type,
			Size:      attachment.Size,
		}

		if err := s.writeAttachment(ctx, descriptor); err != nil {
			attachmentWriteFailures.Inc()
			zap.L().Error("[CommentService] не удалось сохранить вложение",
				zap.String("comment_id", commentID),
				zap.String("file_path", attachment.Path),
				zap.Int("attempts", s.writeAttempts),
				zap.Error(err),
			)
		}
	}
}

func (s *CommentService) writeAttachment(ctx context.Context, descriptor *model.AttachmentDescriptor) error {
	var err error
	for attempt := 1; attempt <= s.writeAttempts; attempt++ {
		if err = s.attachmentRepository.Create(ctx, s.db, descriptor); err == nil {
			return nil
		}
		if attempt == s.writeAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * attachmentRetryDelay):
		}
	}
	return err
}
