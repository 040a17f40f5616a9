package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de bebida admitidos (drink_type).
const (
	BebidaVino      = "vino"
	BebidaEspumante = "espumante"
	BebidaWhisky    = "whisky"
	BebidaGin       = "gin"
	BebidaLicor     = "licor"
	BebidaCerveza   = "cerveza"
	BebidaOtro      = "otro"
)

// TiposBebida lists every valid drink_type in display order.
var TiposBebida = []string{
	BebidaVino, BebidaEspumante, BebidaWhisky, BebidaGin, BebidaLicor, BebidaCerveza, BebidaOtro,
}

// Producto is a catalog entry resolvable by its public (QR) code.
// CodigoPublico is immutable after creation.
type Producto struct {
	ID               uint            `gorm:"primaryKey"`
	CodigoPublico    string          `gorm:"column:public_code;uniqueIndex;not null"`
	Nombre           string          `gorm:"column:name;index;not null"`
	TipoBebida       string          `gorm:"column:drink_type;type:varchar(20);not null"`
	Bodega           string          `gorm:"column:winery_distillery;not null"`
	Varietal         *string         `gorm:"column:varietal"`
	Origen           *string         `gorm:"column:origin"`
	Anio             *int            `gorm:"column:vintage_year"`
	DescripcionCorta *string         `gorm:"column:short_description;type:varchar(200)"`
	PrecioBase       decimal.Decimal `gorm:"column:base_price;type:decimal(10,2);not null"`
	// StockVisible is informational only; no flow decrements it.
	StockVisible *int    `gorm:"column:visible_stock"`
	ImagenURL    *string `gorm:"column:image_url"`
	Activo       bool    `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	// ModificadoPorAdminID is the only audit trail kept on a product.
	ModificadoPorAdminID *uint `gorm:"column:last_modified_by_admin_id"`
}

func (Producto) TableName() string { return "products" }
