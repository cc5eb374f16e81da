package catalogservice

// PricingType способ расчёта цены пакета
type PricingType string

const (
	PricingPerPerson PricingType = "per_person"
	PricingFixed     PricingType = "fixed"
)

// ActivityStatus статус активности в каталоге
type ActivityStatus string

const (
	ActivityStatusDraft     ActivityStatus = "draft"
	ActivityStatusPublished ActivityStatus = "published"
	ActivityStatusInactive  ActivityStatus = "inactive"
)

// Business модель бизнеса из CatalogService
type Business struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	OwnerID    int64   `json:"owner_id"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// IsManager возвращает true, если пользователь управляет бизнесом
func (b *Business) IsManager(userID int64) bool {
	if b.OwnerID == userID {
		return true
	}
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Activity модель активности из CatalogService
type Activity struct {
	ID               int64          `json:"id"`
	BusinessID       int64          `json:"business_id"`
	TypeID           int64          `json:"type_id"`
	Title            string         `json:"title"`
	Status           ActivityStatus `json:"status"`
	DurationMinutes  int            `json:"duration_minutes"`
	CapacityOverride *int           `json:"capacity_override,omitempty"`
	Packages         []Package      `json:"packages"`
}

// IsPublished возвращает true, если активность доступна для бронирования
func (a *Activity) IsPublished() bool {
	return a.Status == ActivityStatusPublished
}

// DefaultPackage возвращает пакет по умолчанию
// Если явного is_default нет - первый пакет списка
func (a *Activity) DefaultPackage() *Package {
	for i := range a.Packages {
		if a.Packages[i].IsDefault {
			return &a.Packages[i]
		}
	}
	if len(a.Packages) > 0 {
		return &a.Packages[0]
	}
	return nil
}

// PackageByCode возвращает пакет по коду
func (a *Activity) PackageByCode(code string) *Package {
	for i := range a.Packages {
		if a.Packages[i].Code == code {
			return &a.Packages[i]
		}
	}
	return nil
}

// PriceFrom возвращает минимальную базовую цену среди пакетов
func (a *Activity) PriceFrom() float64 {
	if len(a.Packages) == 0 {
		return 0
	}
	min := a.Packages[0].BasePrice
	for _, p := range a.Packages[1:] {
		if p.BasePrice < min {
			min = p.BasePrice
		}
	}
	return min
}

// Package ценовой вариант активности (например, "2 игрока", "приватная группа")
type Package struct {
	Code            string      `json:"code"`
	Title           string      `json:"title"`
	BasePrice       float64     `json:"base_price"`
	Currency        string      `json:"currency"`
	PricingType     PricingType `json:"pricing_type"`
	MinParticipants *int        `json:"min_participants,omitempty"`
	MaxParticipants *int        `json:"max_participants,omitempty"`
	IsDefault       bool        `json:"is_default"`
}

// AllowsParty возвращает true, если количество участников укладывается
// в ограничения пакета
func (p *Package) AllowsParty(participants int) bool {
	if p.MinParticipants != nil && participants < *p.MinParticipants {
		return false
	}
	if p.MaxParticipants != nil && participants > *p.MaxParticipants {
		return false
	}
	return true
}

// PriceFor возвращает итоговую цену для указанного количества участников
func (p *Package) PriceFor(participants int) float64 {
	if p.PricingType == PricingPerPerson {
		return p.BasePrice * float64(participants)
	}
	return p.BasePrice
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
