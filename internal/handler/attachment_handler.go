package handler

import (
	"net/http"

	"github.com/zy091/iwishneed-sub001/internal/model/requestresponse"
	"github.com/zy091/iwishneed-sub001/internal/ports"
	"github.com/zy091/iwishneed-sub001/internal/security"
	"github.com/zy091/iwishneed-sub001/internal/util"
)

type AttachmentHandler struct {
	ports.AttachmentService
}

func NewAttachmentHandler(attachmentService ports.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService}
}

// CreateUploadURLs godoc
// @Summary Подписанные URL для загрузки вложений
// @Description Лимит 5 МБ для image/*, 10 МБ для остальных типов. Один превышающий файл отклоняет весь запрос.
// @Tags Attachments
// @Accept json
// @Produce json
// @Param X-Main-Access-Token header string true "Токен основного провайдера"
// @Param request body requestresponse.UploadURLRequest true "Файлы"
// @Success 200 {object} requestresponse.UploadURLResponse "URL в порядке файлов запроса"
// @Failure 400 {object} requestresponse.ErrorResponse "Ошибка валидации или превышен лимит размера"
// @Failure 401 {object} requestresponse.ErrorResponse "Недействительный токен"
// @Failure 403 {object} requestresponse.ErrorResponse "Источник запрещён"
// @Failure 405 {object} requestresponse.ErrorResponse "Метод не поддерживается"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /functions/v1/comments-upload-url [post]
func (h *AttachmentHandler) CreateUploadURLs(w http.ResponseWriter, r *http.Request) {
	if _, err := security.GetIdentityFromContext(r.Context()); err != nil {
		util.HandleError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var request requestresponse.UploadURLRequest
	if err := decodeJSON(w, r, &request); err != nil {
		util.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tickets, err := h.AttachmentService.PresignUploads(r.Context(), request.RequirementID, request.ToModel())
	if err != nil {
		writeServiceError(w, err, "не удалось создать URL загрузки")
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.UploadURLResponse{
		Success: true,
		Uploads: tickets,
	})
}

// GetFileURL godoc
// @Summary Подписанный URL для скачивания вложения
// @Description URL не кэшируется, каждый вызов выдаёт новую подпись.
// @Tags Attachments
// @Produce json
// @Param X-Main-Access-Token header string true "Токен основного провайдера"
// @Param path query string true "Путь объекта в хранилище"
// @Success 200 {object} requestresponse.FileURLResponse "Подписанный URL"
// @Failure 400 {object} requestresponse.ErrorResponse "Отсутствует параметр path"
// @Failure 401 {object} requestresponse.ErrorResponse "Недействительный токен"
// @Failure 403 {object} requestresponse.ErrorResponse "Источник запрещён"
// @Failure 405 {object} requestresponse.ErrorResponse "Метод не поддерживается"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /functions/v1/comments-file-url [get]
func (h *AttachmentHandler) GetFileURL(w http.ResponseWriter, r *http.Request) {
	identity, err := security.GetIdentityFromContext(r.Context())
	if err != nil {
		util.HandleError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	signedURL, err := h.AttachmentService.PresignDownload(r.Context(), identity, r.URL.Query().Get("path"))
	if err != nil {
		writeServiceError(w, err, "не удалось создать URL скачивания")
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.FileURLResponse{
		Success: true,
		URL:     signedURL,
	})
}
