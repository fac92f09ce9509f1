package catalogservice

// Service модель услуги из каталога студии
type Service struct {
	ID              int64    `json:"id"`
	ProviderID      int64    `json:"provider_id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"` // Цена за один сеанс, nil = по договорённости
	DurationMinutes int      `json:"duration_minutes"`
	DefaultSittings int      `json:"default_sittings"` // Рекомендуемое число сеансов (крупные работы)
	IsActive        bool     `json:"is_active"`
}

// Provider модель мастера из каталога
type Provider struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	StudioName  string `json:"studio_name"`
	IsActive    bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
