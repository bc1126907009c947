package requestresponse

// ErrorResponse : единый формат ошибки
type ErrorResponse struct {
	Error string `json:"error" example:"недействительный токен"`
}
