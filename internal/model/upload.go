package model

// FileDeclaration : файл, который клиент собирается загрузить
type FileDeclaration struct {
	Name string
	Type string
	Size int64
}

// UploadTicket : подписанный URL для загрузки одного файла
type UploadTicket struct {
	Path      string `json:"path"`
	Token     string `json:"token"`
	SignedURL string `json:"signedUrl"`
}
