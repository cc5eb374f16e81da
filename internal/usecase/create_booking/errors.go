package create_booking

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена
	ErrActivityNotFound = errors.New("activity not found")

	// ErrActivityNotPublished возвращается, когда активность не опубликована
	ErrActivityNotPublished = errors.New("activity is not published")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrProfileIncomplete возвращается, когда профиль потребителя не заполнен
	// Потребитель должен заполнить имя, фамилию и телефон до бронирования
	ErrProfileIncomplete = errors.New("consumer profile is incomplete")

	// ErrTemplateNotFound возвращается, когда у бизнеса нет активного шаблона
	ErrTemplateNotFound = errors.New("active availability template not found")

	// ErrTemplateMismatch возвращается, когда время начала не лежит на сетке
	// слотов активного шаблона
	ErrTemplateMismatch = errors.New("start time does not match template slot grid")

	// ErrSlotInPast возвращается при попытке бронирования слота в прошлом
	ErrSlotInPast = errors.New("slot is in the past")

	// ErrSlotFull возвращается, когда в слоте не хватает места
	// Бизнес-ошибка: транзакция не ретраится
	ErrSlotFull = errors.New("slot has no remaining capacity")

	// ErrPackageNotFound возвращается, когда указанный пакет не найден в активности
	ErrPackageNotFound = errors.New("package not found")

	// ErrInvalidPartySize возвращается, когда количество участников не укладывается
	// в ограничения пакета
	ErrInvalidPartySize = errors.New("participants count is not allowed by package")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
