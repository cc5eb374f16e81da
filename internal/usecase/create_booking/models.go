package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ConsumerID        int64            // ID потребителя (из заголовка авторизации)
	ActivityID        int64            // ID активности
	Date              time.Time        // Дата слота (без времени)
	StartTime         types.TimeString // Время начала слота ("10:00")
	ParticipantsCount int              // Количество участников
	PackageCode       *string          // Код пакета (опционально, иначе пакет по умолчанию)
	Notes             *string          // Заметки потребителя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                int64
	ActivityID        int64
	BusinessID        int64
	ConsumerID        int64
	BookingDate       time.Time
	StartTime         types.TimeString
	DurationMinutes   int
	ParticipantsCount int
	Status            string

	ActivitySnapshot  domain.ActivitySnapshot
	BusinessSnapshot  domain.BusinessSnapshot
	SelectionSnapshot domain.SelectionSnapshot
	PriceSnapshot     domain.PriceSnapshot

	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
