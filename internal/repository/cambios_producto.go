package repository

import (
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// columnaProducto is unexported so callers can only name columns through the
// CambiosProducto setters.
type columnaProducto string

const (
	colNombre           columnaProducto = "name"
	colTipoBebida       columnaProducto = "drink_type"
	colBodega           columnaProducto = "winery_distillery"
	colVarietal         columnaProducto = "varietal"
	colOrigen           columnaProducto = "origin"
	colAnio             columnaProducto = "vintage_year"
	colDescripcionCorta columnaProducto = "short_description"
	colPrecioBase       columnaProducto = "base_price"
	colStockVisible     columnaProducto = "visible_stock"
	colImagenURL        columnaProducto = "image_url"
	colModificadoPor    columnaProducto = "last_modified_by_admin_id"
)

// CambiosProducto accumulates a partial product update. public_code and id
// have no setter: they are immutable.
type CambiosProducto struct {
	valores map[columnaProducto]interface{}
}

func NuevosCambiosProducto() *CambiosProducto {
	return &CambiosProducto{valores: make(map[columnaProducto]interface{})}
}

func (c *CambiosProducto) set(col columnaProducto, v interface{}) *CambiosProducto {
	c.valores[col] = v
	return c
}

func (c *CambiosProducto) Nombre(v string) *CambiosProducto     { return c.set(colNombre, v) }
func (c *CambiosProducto) TipoBebida(v string) *CambiosProducto { return c.set(colTipoBebida, v) }
func (c *CambiosProducto) Bodega(v string) *CambiosProducto     { return c.set(colBodega, v) }
func (c *CambiosProducto) Varietal(v *string) *CambiosProducto  { return c.set(colVarietal, v) }
func (c *CambiosProducto) Origen(v *string) *CambiosProducto    { return c.set(colOrigen, v) }
func (c *CambiosProducto) Anio(v *int) *CambiosProducto         { return c.set(colAnio, v) }
func (c *CambiosProducto) DescripcionCorta(v *string) *CambiosProducto {
	return c.set(colDescripcionCorta, v)
}
func (c *CambiosProducto) PrecioBase(v decimal.Decimal) *CambiosProducto {
	return c.set(colPrecioBase, v)
}
func (c *CambiosProducto) StockVisible(v *int) *CambiosProducto { return c.set(colStockVisible, v) }
func (c *CambiosProducto) ImagenURL(v *string) *CambiosProducto { return c.set(colImagenURL, v) }
func (c *CambiosProducto) ModificadoPor(adminID uint) *CambiosProducto {
	return c.set(colModificadoPor, adminID)
}

// Vacio reports whether no field other than the audit stamp was set.
func (c *CambiosProducto) Vacio() bool {
	for col := range c.valores {
		if col != colModificadoPor {
			return false
		}
	}
	return true
}

// Columnas returns the column → value map for gorm's Updates.
func (c *CambiosProducto) Columnas() map[string]interface{} {
	out := make(map[string]interface{}, len(c.valores))
	for col, v := range c.valores {
		out[string(col)] = v
	}
	return out
}

// AplicarA copies the pending changes onto p, e.g. to validate the merged
// state before persisting.
func (c *CambiosProducto) AplicarA(p *model.Producto) {
	for col, v := range c.valores {
		switch col {
		case colNombre:
			p.Nombre = v.(string)
		case colTipoBebida:
			p.TipoBebida = v.(string)
		case colBodega:
			p.Bodega = v.(string)
		case colVarietal:
			p.Varietal = v.(*string)
		case colOrigen:
			p.Origen = v.(*string)
		case colAnio:
			p.Anio = v.(*int)
		case colDescripcionCorta:
			p.DescripcionCorta = v.(*string)
		case colPrecioBase:
			p.PrecioBase = v.(decimal.Decimal)
		case colStockVisible:
			p.StockVisible = v.(*int)
		case colImagenURL:
			p.ImagenURL = v.(*string)
		case colModificadoPor:
			id := v.(uint)
			p.ModificadoPorAdminID = &id
		}
	}
}
