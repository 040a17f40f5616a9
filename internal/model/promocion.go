package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promocion is a time-bound price rule attached to one product.
// Tipo: "porcentaje" | "precio_fijo" | "2x1" | "3x2" | "nxm"
// Valor holds a percentage, an absolute price or a unit count depending on Tipo.
// Fin == nil means the promotion never expires.
type Promocion struct {
	ID           uint            `gorm:"primaryKey"`
	ProductoID   uint            `gorm:"column:product_id;index;not null"`
	Tipo         string          `gorm:"column:promotion_type;type:varchar(20);not null"`
	Valor        decimal.Decimal `gorm:"column:parameter_value;type:decimal(10,2);not null"`
	TextoVisible string          `gorm:"column:visible_text;type:varchar(255);not null"`
	Inicio       time.Time       `gorm:"column:start_at;not null"`
	Fin          *time.Time      `gorm:"column:end_at"`
	Activo       bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Promocion) TableName() string { return "promotions" }
