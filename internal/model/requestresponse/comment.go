package requestresponse

import "github.com/zy091/iwishneed-sub001/internal/model"

// AddCommentRequest : тело запроса на добавление комментария
type AddCommentRequest struct {
	RequirementID string              `json:"requirement_id" example:"req-1"`
	Content       string              `json:"content" example:"hello"`
	ParentID      *string             `json:"parent_id,omitempty" example:"8d1f0c52-3a4e-4c8f-9a71-2f5b7c0d9e11"`
	Attachments   []AttachmentRequest `json:"attachments,omitempty"`
}

type AttachmentRequest struct {
	Path string `json:"path" example:"req-1/5f0c..._photo.jpg"`
	Name string `json:"name" example:"photo.jpg"`
	Type string `json:"type" example:"image/jpeg"`
	Size int64  `json:"size" example:"204800"`
}

// AddCommentResponse : созданный комментарий в публичном представлении
type AddCommentResponse struct {
	Success bool                `json:"success" example:"true"`
	Data    model.PublicComment `json:"data"`
}

func (r *AddCommentRequest) ToModel() *model.NewComment {
	attachments := make([]model.AttachmentInput, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		attachments = append(attachments, model.AttachmentInput{
			Path: a.Path,
			Name: a.Name,
			Type: a.Type,
			Size: a.Size,
		})
	}

	return &model.NewComment{
		RequirementID: r.RequirementID,
		Content:       r.Content,
		ParentID:      r.ParentID,
		Attachments:   attachments,
	}
}
