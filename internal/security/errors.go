package security

import "errors"

// ErrInvalidToken : токен пустой, отклонён провайдером или провайдер недоступен.
// Причины намеренно не различаются.
var ErrInvalidToken = errors.New("недействительный токен")
