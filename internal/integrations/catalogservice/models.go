package catalogservice

// Asset модель судна из каталога
type Asset struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"` // boat | experience
	ExperienceID *int64 `json:"experienceId,omitempty"`
	Active       bool   `json:"active"`
}

// AssetListResponse ответ на список судов
type AssetListResponse struct {
	Assets []Asset `json:"assets"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
