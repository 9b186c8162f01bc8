package models

// UserSummary - краткая карточка пользователя для списков.
// Аутентификация и полный профиль живут во внешнем сервисе,
// ядру нужны только отображаемые поля.
type UserSummary struct {
	ID       int64   `json:"id"`
	FullName string  `json:"fullName"`
	Avatar   string  `json:"avatar,omitempty"`
	Rating   float64 `json:"rating"`
}
