package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityService/pkg/types"
)

// TemplateStatus represents the lifecycle status of an availability template
type TemplateStatus string

const (
	TemplateStatusDraft    TemplateStatus = "draft"
	TemplateStatusActive   TemplateStatus = "active"
	TemplateStatusInactive TemplateStatus = "inactive"
)

// TimeWindow одно окно работы внутри дня ("09:00" - "18:00")
type TimeWindow struct {
	Open  types.TimeString `json:"open"`
	Close types.TimeString `json:"close"`
}

// WeeklySchedule расписание окон по дням недели
// Пустой список окон = день закрыт
type WeeklySchedule struct {
	Monday    []TimeWindow `json:"monday"`
	Tuesday   []TimeWindow `json:"tuesday"`
	Wednesday []TimeWindow `json:"wednesday"`
	Thursday  []TimeWindow `json:"thursday"`
	Friday    []TimeWindow `json:"friday"`
	Saturday  []TimeWindow `json:"saturday"`
	Sunday    []TimeWindow `json:"sunday"`
}

// WindowsFor возвращает окна расписания на указанный день недели
func (s *WeeklySchedule) WindowsFor(weekday time.Weekday) []TimeWindow {
	switch weekday {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return nil
	}
}

// Days возвращает все дни недели в порядке Monday..Sunday
// Используется для валидации расписания целиком
func (s *WeeklySchedule) Days() [][]TimeWindow {
	return [][]TimeWindow{
		s.Monday, s.Tuesday, s.Wednesday, s.Thursday, s.Friday, s.Saturday, s.Sunday,
	}
}

// AvailabilityTemplate represents a recurring weekly availability
// configuration of a business: opening windows, slot width and capacity
type AvailabilityTemplate struct {
	ID                  int64
	BusinessID          int64
	Name                string
	Status              TemplateStatus
	SlotDurationMinutes int
	CapacityPerSlot     int
	WeeklySchedule      WeeklySchedule
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsActive returns true if the template is the one consulted by the resolver
func (t *AvailabilityTemplate) IsActive() bool {
	return t.Status == TemplateStatusActive
}

// ValidateSchedule проверяет корректность недельного расписания:
// окна валидны, open < close, в каждом дне окна упорядочены и не пересекаются,
// каждое окно вмещает хотя бы один слот
func (t *AvailabilityTemplate) ValidateSchedule() error {
	for _, windows := range t.WeeklySchedule.Days() {
		var prevClose types.TimeString

		for _, w := range windows {
			if err := w.Open.Validate(); err != nil {
				return fmt.Errorf("invalid window open time: %w", err)
			}
			if err := w.Close.Validate(); err != nil {
				return fmt.Errorf("invalid window close time: %w", err)
			}
			if !w.Open.IsBefore(w.Close) {
				return fmt.Errorf("window open %s must be before close %s", w.Open, w.Close)
			}
			if w.Close.Minutes()-w.Open.Minutes() < t.SlotDurationMinutes {
				return fmt.Errorf("window %s-%s is shorter than slot duration %d minutes",
					w.Open, w.Close, t.SlotDurationMinutes)
			}
			if !prevClose.IsZero() && w.Open.IsBefore(prevClose) {
				return fmt.Errorf("window %s-%s overlaps previous window closing at %s",
					w.Open, w.Close, prevClose)
			}
			prevClose = w.Close
		}
	}

	return nil
}

// TemplateUpdate частичное обновление шаблона
// nil-поля остаются без изменений
type TemplateUpdate struct {
	Name                *string
	Status              *TemplateStatus
	SlotDurationMinutes *int
	CapacityPerSlot     *int
	WeeklySchedule      *WeeklySchedule
}
