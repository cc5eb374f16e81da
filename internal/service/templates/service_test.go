package templates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	templateRepo "github.com/m04kA/SMC-ActivityService/internal/infra/storage/template"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ActivityService/internal/service/templates/models"
	"github.com/m04kA/SMC-ActivityService/pkg/ptr"
)

type fakeTemplateRepo struct {
	templates map[int64]*domain.AvailabilityTemplate
	nextID    int64
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[int64]*domain.AvailabilityTemplate)}
}

func (f *fakeTemplateRepo) Create(_ context.Context, tmpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	f.nextID++
	tmpl.ID = f.nextID
	copied := *tmpl
	f.templates[tmpl.ID] = &copied
	return tmpl, nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityTemplate, error) {
	tmpl, ok := f.templates[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	copied := *tmpl
	return &copied, nil
}

func (f *fakeTemplateRepo) ListByBusiness(_ context.Context, businessID int64) ([]*domain.AvailabilityTemplate, error) {
	result := make([]*domain.AvailabilityTemplate, 0)
	for _, tmpl := range f.templates {
		if tmpl.BusinessID == businessID {
			result = append(result, tmpl)
		}
	}
	return result, nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, id int64, update domain.TemplateUpdate) error {
	tmpl, ok := f.templates[id]
	if !ok {
		return templateRepo.ErrTemplateNotFound
	}
	applyUpdate(tmpl, update)
	return nil
}

func (f *fakeTemplateRepo) DeactivateActive(_ context.Context, businessID int64, slotDurationMinutes int, exceptID int64) error {
	for _, tmpl := range f.templates {
		if tmpl.BusinessID == businessID &&
			tmpl.SlotDurationMinutes == slotDurationMinutes &&
			tmpl.Status == domain.TemplateStatusActive &&
			tmpl.ID != exceptID {
			tmpl.Status = domain.TemplateStatusInactive
		}
	}
	return nil
}

type fakeCatalog struct {
	business *catalogservice.Business
	err      error
}

func (f *fakeCatalog) GetBusiness(_ context.Context, _ int64) (*catalogservice.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.business, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func managedBusiness() *catalogservice.Business {
	return &catalogservice.Business{ID: 1, OwnerID: 100, ManagerIDs: []int64{200}}
}

func validCreateRequest() *models.CreateTemplateRequest {
	return &models.CreateTemplateRequest{
		UserID:              100,
		BusinessID:          1,
		Name:                "Основное расписание",
		SlotDurationMinutes: 60,
		CapacityPerSlot:     4,
		WeeklySchedule: domain.WeeklySchedule{
			Monday: []domain.TimeWindow{{Open: "09:00", Close: "18:00"}},
		},
	}
}

func TestCreate_DraftByDefault(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewService(repo, &fakeCatalog{business: managedBusiness()}, fakeTxManager{}, noopLogger{})

	resp, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.TemplateStatusDraft), resp.Status)
}

func TestCreate_ManagerOnly(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewService(repo, &fakeCatalog{business: managedBusiness()}, fakeTxManager{}, noopLogger{})

	req := validCreateRequest()
	req.UserID = 7

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*models.CreateTemplateRequest)
	}{
		{
			name: "empty name",
			mutate: func(req *models.CreateTemplateRequest) {
				req.Name = ""
			},
		},
		{
			name: "slot duration out of bounds",
			mutate: func(req *models.CreateTemplateRequest) {
				req.SlotDurationMinutes = 1000
			},
		},
		{
			name: "zero capacity",
			mutate: func(req *models.CreateTemplateRequest) {
				req.CapacityPerSlot = 0
			},
		},
		{
			name: "window open after close",
			mutate: func(req *models.CreateTemplateRequest) {
				req.WeeklySchedule.Monday = []domain.TimeWindow{{Open: "18:00", Close: "09:00"}}
			},
		},
		{
			name: "overlapping windows",
			mutate: func(req *models.CreateTemplateRequest) {
				req.WeeklySchedule.Monday = []domain.TimeWindow{
					{Open: "09:00", Close: "13:00"},
					{Open: "12:00", Close: "18:00"},
				}
			},
		},
		{
			name: "window shorter than slot",
			mutate: func(req *models.CreateTemplateRequest) {
				req.WeeklySchedule.Monday = []domain.TimeWindow{{Open: "09:00", Close: "09:30"}}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeTemplateRepo()
			svc := NewService(repo, &fakeCatalog{business: managedBusiness()}, fakeTxManager{}, noopLogger{})

			req := validCreateRequest()
			tc.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_ActivationDeactivatesPrevious(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewService(repo, &fakeCatalog{business: managedBusiness()}, fakeTxManager{}, noopLogger{})

	// Первый шаблон создается сразу активным
	req1 := validCreateRequest()
	req1.Status = ptr.Ptr(string(domain.TemplateStatusActive))
	first, err := svc.Create(context.Background(), req1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TemplateStatusActive), first.Status)

	// Второй - черновик
	second, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Активируем второй: первый должен перейти в inactive
	updated, err := svc.Update(context.Background(), second.ID, &models.UpdateTemplateRequest{
		UserID: 100,
		Status: ptr.Ptr(string(domain.TemplateStatusActive)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.TemplateStatusActive), updated.Status)

	reloaded, err := svc.GetByID(context.Background(), first.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TemplateStatusInactive), reloaded.Status)
}

func TestUpdate_ActiveDurationChangeDeactivatesConflict(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewService(repo, &fakeCatalog{business: managedBusiness()}, fakeTxManager{}, noopLogger{})

	// Активный шаблон на 30-минутные слоты
	req30 := validCreateRequest()
	req30.SlotDurationMinutes = 30
	req30.Status = ptr.Ptr(string(domain.TemplateStatusActive))
	halfHour, err := svc.Create(context.Background(), req30)
	require.NoError(t, err)

	// Активный шаблон на 60-минутные слоты
	req60 := validCreateRequest()
	req60.Status = ptr.Ptr(string(domain.TemplateStatusActive))
	hour, err := svc.Create(context.Background(), req60)
	require.NoError(t, err)

	// Переводим часовой шаблон на 30-минутные слоты: он остается активным,
	// а прежний активный 30-минутный шаблон уходит в inactive
	updated, err := svc.Update(context.Background(), hour.ID, &models.UpdateTemplateRequest{
		UserID:              100,
		SlotDurationMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.TemplateStatusActive), updated.Status)
	assert.Equal(t, 30, updated.SlotDurationMinutes)

	reloaded, err := svc.GetByID(context.Background(), halfHour.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TemplateStatusInactive), reloaded.Status)
}

func TestUpdate_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewService(repo, &fakeCatalog{business: managedBusiness()}, fakeTxManager{}, noopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateTemplateRequest{
		UserID:          100,
		CapacityPerSlot: ptr.Ptr(8),
	})

	require.NoError(t, err)
	assert.Equal(t, 8, updated.CapacityPerSlot)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.SlotDurationMinutes, updated.SlotDurationMinutes)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeTemplateRepo(), &fakeCatalog{business: managedBusiness()}, fakeTxManager{}, noopLogger{})

	_, err := svc.Update(context.Background(), 404, &models.UpdateTemplateRequest{UserID: 100})

	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestListByBusiness_ManagerOnly(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewService(repo, &fakeCatalog{business: managedBusiness()}, fakeTxManager{}, noopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.ListByBusiness(context.Background(), 1, 200)
	require.NoError(t, err)
	assert.Len(t, resp.Templates, 1)

	_, err = svc.ListByBusiness(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
