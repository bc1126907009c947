package model

// CallerIdentity : личность вызывающего, полученная от основного провайдера.
// Живёт в пределах одного запроса.
type CallerIdentity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	RoleHint *int   `json:"role_hint,omitempty"`
}
