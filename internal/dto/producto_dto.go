package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	CodigoPublico    string          `json:"public_code"       validate:"required,max=64"`
	Nombre           string          `json:"name"              validate:"required,max=150"`
	TipoBebida       string          `json:"drink_type"        validate:"required,oneof=vino espumante whisky gin licor cerveza otro"`
	Bodega           string          `json:"winery_distillery" validate:"required,max=150"`
	Varietal         *string         `json:"varietal"          validate:"omitempty,max=100"`
	Origen           *string         `json:"origin"            validate:"omitempty,max=100"`
	Anio             *int            `json:"vintage_year"      validate:"omitempty,min=1800,max=2100"`
	DescripcionCorta *string         `json:"short_description" validate:"omitempty,max=200"`
	PrecioBase       decimal.Decimal `json:"base_price"        validate:"required,gt=0"`
	StockVisible     *int            `json:"visible_stock"     validate:"omitempty,min=0"`
	ImagenURL        *string         `json:"image_url"         validate:"omitempty,url"`
}

// ActualizarProductoRequest is a partial update: nil fields are left as is.
// CodigoPublico is accepted only when it equals the stored code.
type ActualizarProductoRequest struct {
	CodigoPublico    *string          `json:"public_code"`
	Nombre           *string          `json:"name"              validate:"omitempty,max=150"`
	TipoBebida       *string          `json:"drink_type"        validate:"omitempty,oneof=vino espumante whisky gin licor cerveza otro"`
	Bodega           *string          `json:"winery_distillery" validate:"omitempty,max=150"`
	Varietal         *string          `json:"varietal"          validate:"omitempty,max=100"`
	Origen           *string          `json:"origin"            validate:"omitempty,max=100"`
	Anio             *int             `json:"vintage_year"      validate:"omitempty,min=1800,max=2100"`
	DescripcionCorta *string          `json:"short_description" validate:"omitempty,max=200"`
	PrecioBase       *decimal.Decimal `json:"base_price"        validate:"omitempty,gt=0"`
	StockVisible     *int             `json:"visible_stock"     validate:"omitempty,min=0"`
	ImagenURL        *string          `json:"image_url"         validate:"omitempty,url"`
}

// ─── Search / Pagination ─────────────────────────────────────────────────────

// BusquedaRequest is the parsed public search query.
type BusquedaRequest struct {
	Texto      string
	Campo      string
	PrecioMin  *decimal.Decimal
	PrecioMax  *decimal.Decimal
	Anio       *int
	TipoBebida *string
	Limit      int
	Offset     int
}

type ProductoAdminFilter struct {
	Estado string `form:"estado" validate:"omitempty,oneof=activos inactivos todos"`
	Q      string `form:"q"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
	Offset int    `form:"offset,default=0" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PromocionVigenteResponse is the promotion in effect embedded in a product.
type PromocionVigenteResponse struct {
	Tipo   string          `json:"type"`
	Valor  decimal.Decimal `json:"value"`
	Texto  string          `json:"text"`
	Inicio string          `json:"start_at"`
	Fin    *string         `json:"end_at"`
}

type ProductoResponse struct {
	ID               uint                      `json:"id"`
	CodigoPublico    string                    `json:"public_code"`
	Nombre           string                    `json:"name"`
	TipoBebida       string                    `json:"drink_type"`
	Bodega           string                    `json:"winery_distillery"`
	Varietal         *string                   `json:"varietal"`
	Origen           *string                   `json:"origin"`
	Anio             *int                      `json:"vintage_year"`
	DescripcionCorta *string                   `json:"short_description"`
	PrecioBase       decimal.Decimal           `json:"base_price"`
	StockVisible     *int                      `json:"visible_stock"`
	ImagenURL        *string                   `json:"image_url"`
	Activo           bool                      `json:"is_active"`
	CreatedAt        string                    `json:"created_at"`
	UpdatedAt        string                    `json:"updated_at"`
	Promocion        *PromocionVigenteResponse `json:"promotion"`
	PrecioFinal      decimal.Decimal           `json:"final_price"`
	PrecioOriginal   decimal.Decimal           `json:"original_price"`
	// QRLink is only filled on admin responses.
	QRLink string `json:"qr_link,omitempty"`
}

type BusquedaResponse struct {
	Productos []ProductoResponse `json:"products"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

type ProductoListResponse struct {
	Data   []ProductoResponse `json:"data"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
