package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Timestamps use "YYYY-MM-DD HH:MM:SS" in the configured time zone; the
// service checks the format, the calendar and the parameter bounds.
type CrearPromocionRequest struct {
	ProductoID   uint            `json:"product_id"      validate:"required"`
	Tipo         string          `json:"promotion_type"  validate:"required"`
	Valor        decimal.Decimal `json:"parameter_value"`
	TextoVisible string          `json:"visible_text"    validate:"required"`
	Inicio       string          `json:"start_at"        validate:"required"`
	Fin          *string         `json:"end_at"`
}

// ActualizarPromocionRequest replaces every editable field. ProductoID may be
// omitted; when present it must match the stored product.
type ActualizarPromocionRequest struct {
	ProductoID   *uint           `json:"product_id"`
	Tipo         string          `json:"promotion_type"  validate:"required"`
	Valor        decimal.Decimal `json:"parameter_value"`
	TextoVisible string          `json:"visible_text"    validate:"required"`
	Inicio       string          `json:"start_at"        validate:"required"`
	Fin          *string         `json:"end_at"`
}

type PromocionFilter struct {
	ProductoID *uint `form:"product_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PromocionResponse struct {
	ID           uint            `json:"id"`
	ProductoID   uint            `json:"product_id"`
	Tipo         string          `json:"promotion_type"`
	Valor        decimal.Decimal `json:"parameter_value"`
	TextoVisible string          `json:"visible_text"`
	Inicio       string          `json:"start_at"`
	Fin          *string         `json:"end_at"`
	Activo       bool            `json:"is_active"`
	CreatedAt    string          `json:"created_at"`
}

// PromocionActualizadaResponse carries non-blocking warnings, e.g. a window
// that now overlaps another active promotion.
type PromocionActualizadaResponse struct {
	PromocionResponse
	Advertencias []string `json:"advertencias,omitempty"`
}

// ConflictoPromocion describes the promotion that blocked a creation.
type ConflictoPromocion struct {
	ID           uint    `json:"id"`
	TextoVisible string  `json:"visible_text"`
	Inicio       string  `json:"start_at"`
	Fin          *string `json:"end_at"`
}
