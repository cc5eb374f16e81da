package template

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон не найден
	ErrTemplateNotFound = errors.New("template.repository: template not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("template.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("template.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("template.repository: failed to scan row")

	// ErrEncodeSchedule возвращается при ошибке сериализации расписания
	ErrEncodeSchedule = errors.New("template.repository: failed to encode schedule")

	// ErrDecodeSchedule возвращается при ошибке десериализации расписания
	ErrDecodeSchedule = errors.New("template.repository: failed to decode schedule")
)
