package handler

import (
	"net/http"

	"github.com/zy091/iwishneed-sub001/internal/model/requestresponse"
	"github.com/zy091/iwishneed-sub001/internal/ports"
	"github.com/zy091/iwishneed-sub001/internal/security"
	"github.com/zy091/iwishneed-sub001/internal/util"
)

type CommentHandler struct {
	ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService}
}

// AddComment godoc
// @Summary Добавление комментария
// @Description Сохраняет комментарий от имени владельца токена и описания вложений.
// Ошибки сохранения вложений не влияют на ответ, attachments_count равен числу заявленных вложений.
// @Tags Comments
// @Accept json
// @Produce json
// @Param X-Main-Access-Token header string true "Токен основного провайдера"
// @Param request body requestresponse.AddCommentRequest true "Комментарий"
// @Success 200 {object} requestresponse.AddCommentResponse "Комментарий в публичном представлении"
// @Failure 400 {object} requestresponse.ErrorResponse "Отсутствует requirement_id или content"
// @Failure 401 {object} requestresponse.ErrorResponse "Недействительный токен"
// @Failure 403 {object} requestresponse.ErrorResponse "Источник запрещён"
// @Failure 405 {object} requestresponse.ErrorResponse "Метод не поддерживается"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /functions/v1/comments-add [post]
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	identity, err := security.GetIdentityFromContext(r.Context())
	if err != nil {
		util.HandleError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var request requestresponse.AddCommentRequest
	if err := decodeJSON(w, r, &request); err != nil {
		util.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.AddComment(r.Context(), identity, request.ToModel())
	if err != nil {
		writeServiceError(w, err, "не удалось добавить комментарий")
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.AddCommentResponse{
		Success: true,
		Data:    *comment,
	})
}
