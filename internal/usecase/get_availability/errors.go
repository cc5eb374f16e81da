package get_availability

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена
	ErrActivityNotFound = errors.New("activity not found")

	// ErrActivityNotPublished возвращается, когда активность не опубликована
	ErrActivityNotPublished = errors.New("activity is not published")

	// ErrTemplateNotFound возвращается, когда у бизнеса нет активного шаблона
	// для длительности слота активности
	ErrTemplateNotFound = errors.New("active availability template not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
