package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ActivityService/pkg/ptr"
	"github.com/m04kA/SMC-ActivityService/pkg/types"
)

func TestValidateRequest(t *testing.T) {
	validDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		req         *Request
		expectedErr error
	}{
		{
			name: "valid request",
			req: &Request{
				ConsumerID:        1,
				ActivityID:        10,
				Date:              validDate,
				StartTime:         "10:00",
				ParticipantsCount: 2,
			},
		},
		{
			name: "missing consumer",
			req: &Request{
				ActivityID:        10,
				Date:              validDate,
				StartTime:         "10:00",
				ParticipantsCount: 2,
			},
			expectedErr: ErrInvalidInput,
		},
		{
			name: "invalid start time format",
			req: &Request{
				ConsumerID:        1,
				ActivityID:        10,
				Date:              validDate,
				StartTime:         "10am",
				ParticipantsCount: 2,
			},
			expectedErr: ErrInvalidInput,
		},
		{
			name: "zero participants",
			req: &Request{
				ConsumerID:        1,
				ActivityID:        10,
				Date:              validDate,
				StartTime:         "10:00",
				ParticipantsCount: 0,
			},
			expectedErr: ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateRequest(tc.req)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSelectPackage(t *testing.T) {
	activity := &catalogservice.Activity{
		Packages: []catalogservice.Package{
			{
				Code:            "duo",
				Title:           "Два игрока",
				BasePrice:       1500,
				Currency:        "RUB",
				PricingType:     catalogservice.PricingPerPerson,
				MaxParticipants: ptr.Ptr(2),
			},
			{
				Code:            "group",
				Title:           "Группа",
				BasePrice:       5000,
				Currency:        "RUB",
				PricingType:     catalogservice.PricingFixed,
				MinParticipants: ptr.Ptr(3),
				MaxParticipants: ptr.Ptr(8),
				IsDefault:       true,
			},
		},
	}

	t.Run("explicit package code", func(t *testing.T) {
		pkg, err := selectPackage(activity, ptr.Ptr("duo"), 2)
		require.NoError(t, err)
		assert.Equal(t, "duo", pkg.Code)
	})

	t.Run("default package when code omitted", func(t *testing.T) {
		pkg, err := selectPackage(activity, nil, 4)
		require.NoError(t, err)
		assert.Equal(t, "group", pkg.Code)
	})

	t.Run("unknown package code", func(t *testing.T) {
		_, err := selectPackage(activity, ptr.Ptr("solo"), 1)
		assert.ErrorIs(t, err, ErrPackageNotFound)
	})

	t.Run("party above package max", func(t *testing.T) {
		_, err := selectPackage(activity, ptr.Ptr("duo"), 3)
		assert.ErrorIs(t, err, ErrInvalidPartySize)
	})

	t.Run("party below package min", func(t *testing.T) {
		_, err := selectPackage(activity, ptr.Ptr("group"), 2)
		assert.ErrorIs(t, err, ErrInvalidPartySize)
	})

	t.Run("per person pricing multiplies", func(t *testing.T) {
		pkg, err := selectPackage(activity, ptr.Ptr("duo"), 2)
		require.NoError(t, err)
		assert.Equal(t, 3000.0, pkg.PriceFor(2))
	})

	t.Run("fixed pricing ignores party size", func(t *testing.T) {
		pkg, err := selectPackage(activity, ptr.Ptr("group"), 5)
		require.NoError(t, err)
		assert.Equal(t, 5000.0, pkg.PriceFor(5))
	})
}

func TestValidateStartTimeOnGrid(t *testing.T) {
	tmpl := &domain.AvailabilityTemplate{
		SlotDurationMinutes: 60,
		WeeklySchedule: domain.WeeklySchedule{
			// 15 сентября 2026 - вторник
			Tuesday: []domain.TimeWindow{
				{Open: "09:00", Close: "12:00"},
			},
		},
	}
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		startTime types.TimeString
		expectErr bool
	}{
		{name: "on grid first slot", startTime: "09:00"},
		{name: "on grid last slot", startTime: "11:00"},
		{name: "off grid between slots", startTime: "09:30", expectErr: true},
		{name: "before opening", startTime: "08:00", expectErr: true},
		{name: "slot would cross closing", startTime: "12:00", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateStartTimeOnGrid(tmpl, date, tc.startTime)
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrTemplateMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStartTimeOnGrid_ClosedDay(t *testing.T) {
	tmpl := &domain.AvailabilityTemplate{
		SlotDurationMinutes: 60,
		WeeklySchedule:      domain.WeeklySchedule{},
	}
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	err := validateStartTimeOnGrid(tmpl, date, "10:00")
	assert.ErrorIs(t, err, ErrTemplateMismatch)
}

func TestValidateSlotNotInPast(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)

	assert.ErrorIs(t, validateSlotNotInPast(date, "09:00", now), ErrSlotInPast)
	// Слот, начинающийся ровно в now, ещё бронируется
	assert.NoError(t, validateSlotNotInPast(date, "10:30", now))
	assert.NoError(t, validateSlotNotInPast(date, "11:00", now))
}
