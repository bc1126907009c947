package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/zy091/iwishneed-sub001/internal/service"
	"github.com/zy091/iwishneed-sub001/internal/util"
)

const maxBodyBytes = 1 << 20

var errBadRequestBody = errors.New("неверный формат запроса")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errors.New("тело запроса слишком большое")
		}
		return errBadRequestBody
	}
	return nil
}

// writeServiceError : ошибки валидации отдаются клиенту как есть,
// остальные логируются сервисом и скрываются за общим сообщением
func writeServiceError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, service.ErrValidation) {
		util.HandleError(w, strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": "), http.StatusBadRequest)
		return
	}
	util.HandleError(w, message, http.StatusInternalServerError)
}
