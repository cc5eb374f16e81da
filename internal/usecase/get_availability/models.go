package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
)

// Request модель запроса на получение доступности активности
type Request struct {
	ActivityID int64     // ID активности
	Date       time.Time // Дата, на которую запрашиваются слоты (без времени)
	PartySize  int       // Количество участников (по умолчанию 1)
}

// Response модель ответа со списком слотов на дату
type Response struct {
	ActivityID int64         // ID активности
	Date       time.Time     // Дата, на которую запрашивались слоты
	PartySize  int           // Количество участников из запроса
	Slots      []domain.Slot // Все слоты дня с признаком доступности
}
