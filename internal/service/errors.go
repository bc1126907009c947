package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation : ошибка входных данных, текст безопасно отдавать клиенту
	ErrValidation = errors.New("ошибка валидации")
	// ErrFileTooLarge : файл превысил лимит своего типа
	ErrFileTooLarge = fmt.Errorf("%w: файл слишком большой", ErrValidation)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
