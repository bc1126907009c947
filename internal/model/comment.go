package model

import "time"

// Comment : строка таблицы comments.
// Поля автора заполняются только из проверенной личности вызывающего.
type Comment struct {
	ID               string    `db:"id" json:"id"`
	RequirementID    string    `db:"requirement_id" json:"requirement_id"`
	Content          string    `db:"content" json:"content"`
	AuthorExternalID string    `db:"author_external_id" json:"author_external_id"`
	AuthorEmail      string    `db:"author_email" json:"author_email"`
	ParentID         *string   `db:"parent_id" json:"parent_id,omitempty"`
	AttachmentsCount int       `db:"attachments_count" json:"attachments_count"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// AttachmentDescriptor : строка таблицы comment_attachments
type AttachmentDescriptor struct {
	CommentID string `db:"comment_id" json:"comment_id"`
	FilePath  string `db:"file_path" json:"file_path"`
	FileName  string `db:"file_name" json:"file_name"`
	MimeType  string `db:"mime_type" json:"mime_type"`
	Size      int64  `db:"size" json:"size"`
}

// PublicComment : строка представления comments_public.
// Email автора маскируется на стороне БД, внешний идентификатор автора не отдаётся.
type PublicComment struct {
	ID               string    `db:"id" json:"id"`
	RequirementID    string    `db:"requirement_id" json:"requirement_id"`
	Content          string    `db:"content" json:"content"`
	AuthorEmail      *string   `db:"author_email" json:"author_email"`
	ParentID         *string   `db:"parent_id" json:"parent_id"`
	AttachmentsCount int       `db:"attachments_count" json:"attachments_count"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// NewComment : входные данные для добавления комментария
type NewComment struct {
	RequirementID string
	Content       string
	ParentID      *string
	Attachments   []AttachmentInput
}

type AttachmentInput struct {
	Path string
	Name string
	Type string
	Size int64
}
