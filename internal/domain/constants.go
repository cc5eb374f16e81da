package domain

// Default values
const (
	DefaultPartySize = 1
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinCapacityPerSlot     = 1
	MaxCapacityPerSlot     = 500
	MinParticipantsCount   = 1

	MaxTemplateNameLength       = 200
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CapacityConsumingStatuses статусы бронирований, учитываемые при подсчёте
// занятости слота. Отменённые бронирования ёмкость не потребляют.
var CapacityConsumingStatuses = []BookingStatus{
	StatusActive,
	StatusCompleted,
}

// ValidBookingStatuses все допустимые статусы бронирования
var ValidBookingStatuses = []BookingStatus{
	StatusActive,
	StatusCancelled,
	StatusCompleted,
}

// ValidTemplateStatuses все допустимые статусы шаблона доступности
var ValidTemplateStatuses = []TemplateStatus{
	TemplateStatusDraft,
	TemplateStatusActive,
	TemplateStatusInactive,
}
