// Package promo holds the promotion pricing and validity rules: the typed
// parameter of each promotion kind, the final-price computation and the
// window overlap checks. Everything here is pure; persistence lives in
// the repository package.
package promo

import (
	"fmt"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// Tipo identifies a promotion kind.
type Tipo string

const (
	TipoPorcentaje Tipo = "porcentaje"
	TipoPrecioFijo Tipo = "precio_fijo"
	Tipo2x1        Tipo = "2x1"
	Tipo3x2        Tipo = "3x2"
	TipoNxM        Tipo = "nxm"
)

// Tipos lists every promotion kind.
var Tipos = []Tipo{TipoPorcentaje, TipoPrecioFijo, Tipo2x1, Tipo3x2, TipoNxM}

// Valido reports whether t is one of the known kinds.
func (t Tipo) Valido() bool {
	switch t {
	case TipoPorcentaje, TipoPrecioFijo, Tipo2x1, Tipo3x2, TipoNxM:
		return true
	}
	return false
}

// EsCombo reports whether the parameter of t is a unit count.
func (t Tipo) EsCombo() bool {
	return t == Tipo2x1 || t == Tipo3x2 || t == TipoNxM
}

var cien = decimal.NewFromInt(100)

// Regla is the validated parameter of a promotion. There is one variant per
// kind; NuevaRegla is the only constructor that checks bounds.
type Regla interface {
	Tipo() Tipo
	// Valor is the stored parameter_value.
	Valor() decimal.Decimal
	precioUnitario(base decimal.Decimal) decimal.Decimal
}

// Porcentaje takes Pct percent off the base price (0 < Pct < 100).
type Porcentaje struct{ Pct decimal.Decimal }

func (Porcentaje) Tipo() Tipo               { return TipoPorcentaje }
func (p Porcentaje) Valor() decimal.Decimal { return p.Pct }

func (p Porcentaje) precioUnitario(base decimal.Decimal) decimal.Decimal {
	return base.Mul(cien.Sub(p.Pct)).Div(cien)
}

// PrecioFijo replaces the base price (0 < Precio < base).
type PrecioFijo struct{ Precio decimal.Decimal }

func (PrecioFijo) Tipo() Tipo               { return TipoPrecioFijo }
func (p PrecioFijo) Valor() decimal.Decimal { return p.Precio }

func (p PrecioFijo) precioUnitario(decimal.Decimal) decimal.Decimal { return p.Precio }

// Combo covers the bundle kinds (2x1, 3x2, nxm). Unidades is the bundle
// count entered by the operator. The displayed price is a per-unit reference:
// 2x1 halves it, 3x2 takes a third off, nxm leaves it unchanged and relies on
// the promotion text.
type Combo struct {
	Clase    Tipo
	Unidades int64
}

func (c Combo) Tipo() Tipo             { return c.Clase }
func (c Combo) Valor() decimal.Decimal { return decimal.NewFromInt(c.Unidades) }

func (c Combo) precioUnitario(base decimal.Decimal) decimal.Decimal {
	switch c.Clase {
	case Tipo2x1:
		return base.Div(decimal.NewFromInt(2))
	case Tipo3x2:
		return base.Mul(decimal.NewFromInt(2)).Div(decimal.NewFromInt(3))
	default:
		return base
	}
}

// ErrorParametro reports an invalid promotion field. Campo uses the wire name.
type ErrorParametro struct {
	Campo   string
	Mensaje string
}

func (e *ErrorParametro) Error() string { return e.Campo + ": " + e.Mensaje }

// ValidarParametro checks the bounds that do not depend on the product.
func ValidarParametro(tipo Tipo, valor decimal.Decimal) error {
	if !tipo.Valido() {
		return &ErrorParametro{Campo: "promotion_type", Mensaje: fmt.Sprintf("tipo de promocion desconocido: %q", tipo)}
	}
	if !valor.IsPositive() {
		return &ErrorParametro{Campo: "parameter_value", Mensaje: "debe ser mayor a 0"}
	}
	switch {
	case tipo == TipoPorcentaje && valor.GreaterThanOrEqual(cien):
		return &ErrorParametro{Campo: "parameter_value", Mensaje: "el porcentaje debe ser menor a 100"}
	case tipo.EsCombo() && !valor.IsInteger():
		return &ErrorParametro{Campo: "parameter_value", Mensaje: "la cantidad del combo debe ser un entero"}
	}
	return nil
}

// NuevaRegla validates valor for tipo against the product's base price and
// returns the matching variant.
func NuevaRegla(tipo Tipo, valor, precioBase decimal.Decimal) (Regla, error) {
	if err := ValidarParametro(tipo, valor); err != nil {
		return nil, err
	}
	switch tipo {
	case TipoPorcentaje:
		return Porcentaje{Pct: valor}, nil
	case TipoPrecioFijo:
		if valor.GreaterThanOrEqual(precioBase) {
			return nil, &ErrorParametro{
				Campo:   "parameter_value",
				Mensaje: fmt.Sprintf("el precio fijo debe ser menor al precio base (%s)", precioBase.StringFixed(2)),
			}
		}
		return PrecioFijo{Precio: valor}, nil
	default:
		return Combo{Clase: tipo, Unidades: valor.IntPart()}, nil
	}
}

// ReglaDe rebuilds the rule of a stored promotion without re-checking the
// base-price bound, which may have moved since the promotion was created.
// Unknown kinds yield nil, which prices at base.
func ReglaDe(p *model.Promocion) Regla {
	if p == nil {
		return nil
	}
	switch t := Tipo(p.Tipo); t {
	case TipoPorcentaje:
		return Porcentaje{Pct: p.Valor}
	case TipoPrecioFijo:
		return PrecioFijo{Precio: p.Valor}
	case Tipo2x1, Tipo3x2, TipoNxM:
		return Combo{Clase: t, Unidades: p.Valor.IntPart()}
	}
	return nil
}
