package promo

import "github.com/shopspring/decimal"

// PrecioFinal returns the displayed unit price of a product priced at base
// under regla (nil = no promotion), rounded to cents. A result that rounds
// to zero or below falls back to base.
func PrecioFinal(base decimal.Decimal, regla Regla) decimal.Decimal {
	if regla == nil {
		return base.Round(2)
	}
	final := regla.precioUnitario(base).Round(2)
	if !final.IsPositive() {
		return base.Round(2)
	}
	return final
}
