package models

// Service is a bookable cleaning service. Prices travel as decimal strings.
type Service struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	PricePerHour       string `json:"price_per_hour"`
	PlatformFeePerHour string `json:"platform_fee_per_hour"`
	IsActive           bool   `json:"is_active"`
}

// ServiceRequest is used to create or edit a service
type ServiceRequest struct {
	Name               string `json:"name" validate:"required"`
	Description        string `json:"description,omitempty"`
	PricePerHour       string `json:"price_per_hour" validate:"required,numeric"`
	PlatformFeePerHour string `json:"platform_fee_per_hour" validate:"required,numeric"`
	IsActive           bool   `json:"is_active"`
}
