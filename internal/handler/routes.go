package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zy091/iwishneed-sub001/internal/ports"
	"github.com/zy091/iwishneed-sub001/internal/security"
)

// SetupGatewayRoutes : обработчики регистрируются на все методы,
// проверку источника, preflight и метода выполняет security.CORS
func SetupGatewayRoutes(
	r chi.Router,
	commentHandler *CommentHandler,
	attachmentHandler *AttachmentHandler,
	verifier ports.IdentityVerifier,
	basePolicy *security.OriginPolicy,
	uploadPolicy *security.OriginPolicy,
) {
	requireToken := security.MainTokenMiddleware(verifier)

	r.Route("/functions/v1", func(r chi.Router) {
		r.With(security.CORS(basePolicy, http.MethodPost), requireToken).
			HandleFunc("/comments-add", commentHandler.AddComment)
		r.With(security.CORS(uploadPolicy, http.MethodPost), requireToken).
			HandleFunc("/comments-upload-url", attachmentHandler.CreateUploadURLs)
		r.With(security.CORS(basePolicy, http.MethodGet), requireToken).
			HandleFunc("/comments-file-url", attachmentHandler.GetFileURL)
	})
}
