package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-ActivityService/pkg/ptr"
)

// fakeLedger имитирует репозиторий бронирований поверх слайса в памяти.
// Потокобезопасность обеспечивает fakeTxManager, сериализующий транзакции
type fakeLedger struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeLedger) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeLedger) GetLedgerForSlotDate(_ context.Context, activityID int64, date time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ActivityID == activityID && b.BookingDate.Equal(date) && !b.IsCancelled() {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeTemplates struct {
	template *domain.AvailabilityTemplate
	err      error
}

func (f *fakeTemplates) GetActiveTemplate(_ context.Context, _ int64, _ int) (*domain.AvailabilityTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.template, nil
}

type fakeCatalog struct {
	activity *catalogservice.Activity
	business *catalogservice.Business
	err      error
}

func (f *fakeCatalog) GetActivity(_ context.Context, _ int64) (*catalogservice.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.activity, nil
}

func (f *fakeCatalog) GetBusiness(_ context.Context, _ int64) (*catalogservice.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.business, nil
}

type fakeProfiles struct {
	profile *profileservice.Profile
	err     error
}

func (f *fakeProfiles) GetProfile(_ context.Context, _ int64) (*profileservice.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

// fakeTxManager сериализует транзакции мьютексом - модель сериализуемой
// изоляции для тестов: проверка ёмкости и запись атомарны
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func completeProfile() *profileservice.Profile {
	return &profileservice.Profile{
		ID:        1,
		FirstName: "Иван",
		LastName:  "Петров",
		Phone:     "+79990001122",
	}
}

func testActivity() *catalogservice.Activity {
	return &catalogservice.Activity{
		ID:              10,
		BusinessID:      1,
		TypeID:          3,
		Title:           "Квест-комната",
		Status:          catalogservice.ActivityStatusPublished,
		DurationMinutes: 60,
		Packages: []catalogservice.Package{
			{
				Code:        "standard",
				Title:       "Стандарт",
				BasePrice:   1000,
				Currency:    "RUB",
				PricingType: catalogservice.PricingPerPerson,
				IsDefault:   true,
			},
		},
	}
}

func testBusiness() *catalogservice.Business {
	return &catalogservice.Business{
		ID:      1,
		Name:    "Квесты на Лесной",
		City:    "Москва",
		OwnerID: 100,
	}
}

func testTemplate(capacity int) *domain.AvailabilityTemplate {
	return &domain.AvailabilityTemplate{
		ID:                  5,
		BusinessID:          1,
		Status:              domain.TemplateStatusActive,
		SlotDurationMinutes: 60,
		CapacityPerSlot:     capacity,
		WeeklySchedule: domain.WeeklySchedule{
			// 15 сентября 2026 - вторник
			Tuesday: []domain.TimeWindow{
				{Open: "09:00", Close: "18:00"},
			},
		},
	}
}

func newCreateBookingUseCase(
	ledger *fakeLedger,
	templates TemplateRepository,
	catalog CatalogServiceClient,
	profiles ProfileServiceClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(ledger, templates, catalog, profiles, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		ConsumerID:        1,
		ActivityID:        10,
		Date:              time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:         "10:00",
		ParticipantsCount: 2,
	}
}

func testNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func TestExecute_CreatesBookingWithSnapshots(t *testing.T) {
	ledger := &fakeLedger{}
	uc := newCreateBookingUseCase(
		ledger,
		&fakeTemplates{template: testTemplate(4)},
		&fakeCatalog{activity: testActivity(), business: testBusiness()},
		&fakeProfiles{profile: completeProfile()},
		testNow(),
	)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	assert.Equal(t, int64(1), resp.BusinessID)
	assert.Equal(t, 60, resp.DurationMinutes)

	assert.Equal(t, "Квест-комната", resp.ActivitySnapshot.Title)
	assert.Equal(t, "Квесты на Лесной", resp.BusinessSnapshot.Name)
	assert.Equal(t, "standard", resp.SelectionSnapshot.PackageCode)
	// per_person: 1000 x 2 участника
	assert.Equal(t, 2000.0, resp.PriceSnapshot.TotalPrice)

	require.Len(t, ledger.bookings, 1)
}

func TestExecute_SlotFullWhenCapacityExceeded(t *testing.T) {
	ledger := &fakeLedger{}
	uc := newCreateBookingUseCase(
		ledger,
		&fakeTemplates{template: testTemplate(3)},
		&fakeCatalog{activity: testActivity(), business: testBusiness()},
		&fakeProfiles{profile: completeProfile()},
		testNow(),
	)

	// Первое бронирование занимает 2 из 3 мест
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Второе на 2 места уже не помещается
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)

	// Но на 1 место - помещается
	req := validRequest()
	req.ParticipantsCount = 1
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotBlockSlot(t *testing.T) {
	ledger := &fakeLedger{
		bookings: []*domain.Booking{
			{
				ID:                99,
				ActivityID:        10,
				BookingDate:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
				StartTime:         "10:00",
				ParticipantsCount: 4,
				Status:            domain.StatusCancelled,
			},
		},
		nextID: 99,
	}

	uc := newCreateBookingUseCase(
		ledger,
		&fakeTemplates{template: testTemplate(4)},
		&fakeCatalog{activity: testActivity(), business: testBusiness()},
		&fakeProfiles{profile: completeProfile()},
		testNow(),
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ConcurrentCreatesNeverOverbook(t *testing.T) {
	const capacity = 3
	const attempts = 10

	ledger := &fakeLedger{}
	uc := newCreateBookingUseCase(
		ledger,
		&fakeTemplates{template: testTemplate(capacity)},
		&fakeCatalog{activity: testActivity(), business: testBusiness()},
		&fakeProfiles{profile: completeProfile()},
		testNow(),
	)

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.ConsumerID = int64(i + 1)
			req.ParticipantsCount = 1
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	slotFull := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotFull):
			slotFull++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Ровно capacity бронирований проходят, остальные получают SLOT_FULL
	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, attempts-capacity, slotFull)

	total := 0
	for _, b := range ledger.bookings {
		if b.CountsTowardCapacity() {
			total += b.ParticipantsCount
		}
	}
	assert.Equal(t, capacity, total, "ledger must never exceed slot capacity")
}

func TestExecute_PreTransactionChecks(t *testing.T) {
	testCases := []struct {
		name        string
		templates   TemplateRepository
		catalog     CatalogServiceClient
		profiles    ProfileServiceClient
		mutate      func(*Request)
		expectedErr error
	}{
		{
			name:        "incomplete profile rejected before catalog checks",
			templates:   &fakeTemplates{template: testTemplate(4)},
			catalog:     &fakeCatalog{err: errors.New("catalog must not be called")},
			profiles:    &fakeProfiles{profile: &profileservice.Profile{ID: 1, FirstName: "Иван"}},
			expectedErr: ErrProfileIncomplete,
		},
		{
			name:        "missing profile",
			templates:   &fakeTemplates{template: testTemplate(4)},
			catalog:     &fakeCatalog{activity: testActivity(), business: testBusiness()},
			profiles:    &fakeProfiles{err: profileservice.ErrProfileNotFound},
			expectedErr: ErrProfileIncomplete,
		},
		{
			name:        "activity not found",
			templates:   &fakeTemplates{template: testTemplate(4)},
			catalog:     &fakeCatalog{err: catalogservice.ErrActivityNotFound},
			profiles:    &fakeProfiles{profile: completeProfile()},
			expectedErr: ErrActivityNotFound,
		},
		{
			name:      "activity not published",
			templates: &fakeTemplates{template: testTemplate(4)},
			catalog: &fakeCatalog{
				activity: &catalogservice.Activity{ID: 10, BusinessID: 1, Status: catalogservice.ActivityStatusDraft},
				business: testBusiness(),
			},
			profiles:    &fakeProfiles{profile: completeProfile()},
			expectedErr: ErrActivityNotPublished,
		},
		{
			name:      "unknown package code",
			templates: &fakeTemplates{template: testTemplate(4)},
			catalog:   &fakeCatalog{activity: testActivity(), business: testBusiness()},
			profiles:  &fakeProfiles{profile: completeProfile()},
			mutate: func(req *Request) {
				req.PackageCode = ptr.Ptr("vip")
			},
			expectedErr: ErrPackageNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newCreateBookingUseCase(&fakeLedger{}, tc.templates, tc.catalog, tc.profiles, testNow())

			req := validRequest()
			if tc.mutate != nil {
				tc.mutate(req)
			}

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestExecute_TransactionChecks(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(*Request)
		expectedErr error
	}{
		{
			name: "off grid start time",
			mutate: func(req *Request) {
				req.StartTime = "10:17"
			},
			expectedErr: ErrTemplateMismatch,
		},
		{
			name: "closed day",
			mutate: func(req *Request) {
				// 16 сентября 2026 - среда, окон нет
				req.Date = time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
			},
			expectedErr: ErrTemplateMismatch,
		},
		{
			name: "slot in the past",
			mutate: func(req *Request) {
				// 1 сентября 2026 - вторник, сетка совпадает, но слот уже прошёл
				req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
				req.StartTime = "09:00"
			},
			expectedErr: ErrSlotInPast,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newCreateBookingUseCase(
				&fakeLedger{},
				&fakeTemplates{template: testTemplate(4)},
				&fakeCatalog{activity: testActivity(), business: testBusiness()},
				&fakeProfiles{profile: completeProfile()},
				testNow(),
			)

			req := validRequest()
			tc.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}
