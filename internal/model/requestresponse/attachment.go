package requestresponse

import "github.com/zy091/iwishneed-sub001/internal/model"

// UploadURLRequest : файлы, для которых нужны подписанные URL загрузки
type UploadURLRequest struct {
	RequirementID string        `json:"requirement_id" example:"req-1"`
	Files         []FileRequest `json:"files"`
}

type FileRequest struct {
	Name string `json:"name" example:"photo.jpg"`
	Type string `json:"type" example:"image/jpeg"`
	Size int64  `json:"size" example:"204800"`
}

type UploadURLResponse struct {
	Success bool                 `json:"success" example:"true"`
	Uploads []model.UploadTicket `json:"uploads"`
}

type FileURLResponse struct {
	Success bool   `json:"success" example:"true"`
	URL     string `json:"url" example:"https://storage.example.com/comment-attachments/req-1/file.pdf?X-Amz-Signature=..."`
}

func (r *UploadURLRequest) ToModel() []model.FileDeclaration {
	files := make([]model.FileDeclaration, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, model.FileDeclaration{Name: f.Name, Type: f.Type, Size: f.Size})
	}
	return files
}
