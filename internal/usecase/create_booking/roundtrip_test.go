package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ActivityService/internal/usecase/get_availability"
)

// Создание бронирования и резолв доступности работают поверх одного журнала:
// резолв после бронирования показывает уменьшенный остаток ёмкости, а снапшоты
// в журнале совпадают с данными каталога на момент создания
func TestCreateThenResolve_RoundTrip(t *testing.T) {
	ledger := &fakeLedger{}
	templates := &fakeTemplates{template: testTemplate(4)}
	catalog := &fakeCatalog{activity: testActivity(), business: testBusiness()}

	createUC := newCreateBookingUseCase(
		ledger,
		templates,
		catalog,
		&fakeProfiles{profile: completeProfile()},
		testNow(),
	)
	resolveUC := getAvailability.NewUseCase(ledger, templates, catalog, noopLogger{})

	created, err := createUC.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	resolved, err := resolveUC.Execute(context.Background(), &getAvailability.Request{
		ActivityID: 10,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		PartySize:  1,
	})
	require.NoError(t, err)

	var slot *domain.Slot
	for i := range resolved.Slots {
		if resolved.Slots[i].StartTime.Equal("10:00") {
			slot = &resolved.Slots[i]
		}
	}
	require.NotNil(t, slot, "забронированный слот должен быть в сетке")

	// 2 участника заняли 2 из 4 мест
	assert.Equal(t, 2, slot.CapacityBooked)
	assert.Equal(t, 2, slot.RemainingCapacity)

	// Снапшоты в журнале идентичны возвращённым при создании
	// и данным каталога на момент бронирования
	require.Len(t, ledger.bookings, 1)
	stored := ledger.bookings[0]
	assert.Equal(t, created.ActivitySnapshot, stored.ActivitySnapshot)
	assert.Equal(t, created.BusinessSnapshot, stored.BusinessSnapshot)
	assert.Equal(t, created.SelectionSnapshot, stored.SelectionSnapshot)
	assert.Equal(t, created.PriceSnapshot, stored.PriceSnapshot)
	assert.Equal(t, "Квест-комната", stored.ActivitySnapshot.Title)
	assert.Equal(t, "Квесты на Лесной", stored.BusinessSnapshot.Name)
}
