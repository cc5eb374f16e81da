package domain

// Снапшоты - неизменяемые копии данных каталога, снятые в момент создания
// бронирования. Хранятся в JSONB колонках и никогда не обновляются.

// ActivitySnapshot copy of the booked activity at booking time
type ActivitySnapshot struct {
	ActivityID int64  `json:"activityId"`
	BusinessID int64  `json:"businessId"`
	TypeID     int64  `json:"typeId"`
	Title      string `json:"title"`
}

// BusinessSnapshot copy of the owning business at booking time
type BusinessSnapshot struct {
	BusinessID int64  `json:"businessId"`
	Name       string `json:"name"`
	City       string `json:"city,omitempty"`
}

// SelectionSnapshot copy of the selected package variant at booking time
type SelectionSnapshot struct {
	PackageCode       string `json:"packageCode"`
	PackageTitle      string `json:"packageTitle"`
	PricingType       string `json:"pricingType"`
	ParticipantsCount int    `json:"participantsCount"`
}

// PriceSnapshot price calculation fixed at booking time
type PriceSnapshot struct {
	Currency    string  `json:"currency"`
	BasePrice   float64 `json:"basePrice"`
	TotalPrice  float64 `json:"totalPrice"`
	PricingType string  `json:"pricingType"`
}
