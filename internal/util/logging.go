package util

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// LogError : логирует ошибку и возвращает её обёрнутой в message
func LogError(message string, err error) error {
	zap.L().Error(message, zap.Error(err))
	return fmt.Errorf("%s: %w", message, err)
}

// HandleError : ответ об ошибке в формате {"error": "..."}
func HandleError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, statusCode, struct {
		Error string `json:"error"`
	}{
		Error: message,
	})
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("ошибка записи ответа", zap.Error(err))
	}
}
