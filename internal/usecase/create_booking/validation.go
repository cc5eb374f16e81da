package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ActivityService/pkg/types"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.ConsumerID <= 0 {
		return fmt.Errorf("%w: consumer id must be positive", ErrInvalidInput)
	}

	if req.ActivityID <= 0 {
		return fmt.Errorf("%w: activity id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if req.ParticipantsCount < domain.MinParticipantsCount {
		return fmt.Errorf("%w: participants count must be at least %d",
			ErrInvalidInput, domain.MinParticipantsCount)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters",
			ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// selectPackage выбирает пакет активности: явно указанный по коду или
// пакет по умолчанию. Затем проверяет ограничения на количество участников
func selectPackage(activity *catalogservice.Activity, packageCode *string, participants int) (*catalogservice.Package, error) {
	var pkg *catalogservice.Package

	if packageCode != nil {
		pkg = activity.PackageByCode(*packageCode)
		if pkg == nil {
			return nil, fmt.Errorf("%w: code %q", ErrPackageNotFound, *packageCode)
		}
	} else {
		pkg = activity.DefaultPackage()
		if pkg == nil {
			return nil, fmt.Errorf("%w: activity has no packages", ErrPackageNotFound)
		}
	}

	if !pkg.AllowsParty(participants) {
		return nil, fmt.Errorf("%w: %d participants not allowed by package %q",
			ErrInvalidPartySize, participants, pkg.Code)
	}

	return pkg, nil
}

// validateStartTimeOnGrid проверяет, что время начала лежит ровно на сетке
// слотов шаблона для дня недели запрошенной даты
func validateStartTimeOnGrid(tmpl *domain.AvailabilityTemplate, date time.Time, startTime types.TimeString) error {
	windows := tmpl.WeeklySchedule.WindowsFor(date.Weekday())

	for _, window := range windows {
		current := window.Open

		for {
			slotEnd, err := current.AddMinutes(tmpl.SlotDurationMinutes)
			if err != nil || slotEnd.IsAfter(window.Close) {
				break
			}
			if current.Equal(startTime) {
				return nil
			}
			current = slotEnd
		}
	}

	return fmt.Errorf("%w: %s on %s", ErrTemplateMismatch, startTime, date.Format(domain.DateFormat))
}

// validateSlotNotInPast проверяет, что слот не начался строго раньше now
// Слот, начинающийся ровно в now, ещё можно забронировать
func validateSlotNotInPast(date time.Time, startTime types.TimeString, now time.Time) error {
	slotStart := startTime.OnDate(date)
	if slotStart.Before(now) {
		return fmt.Errorf("%w: %s %s", ErrSlotInPast, date.Format(domain.DateFormat), startTime)
	}
	return nil
}
