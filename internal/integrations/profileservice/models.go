package profileservice

// Profile модель профиля потребителя из ProfileService
type Profile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// IsComplete возвращает true, если профиль заполнен достаточно для
// создания бронирования (имя и телефон обязательны)
func (p *Profile) IsComplete() bool {
	return p.FirstName != "" && p.LastName != "" && p.Phone != ""
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
