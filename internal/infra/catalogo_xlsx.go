package infra

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const hojaCatalogo = "Catalogo"

// encabezadoCatalogo is the first row of the export; FilaCatalogo.valores
// follows the same order.
var encabezadoCatalogo = []interface{}{
	"Codigo", "Nombre", "Tipo", "Bodega / Destileria", "Varietal", "Origen", "Cosecha",
	"Precio base", "Precio final", "Promocion", "Activo", "Stock", "Link QR", "Actualizado",
}

// FilaCatalogo is one product row of the spreadsheet export.
type FilaCatalogo struct {
	Codigo      string
	Nombre      string
	Tipo        string
	Bodega      string
	Varietal    string
	Origen      string
	Anio        *int
	PrecioBase  float64
	PrecioFinal float64
	Promocion   string
	Activo      bool
	Stock       *int
	Link        string
	Actualizado string
}

func (f FilaCatalogo) valores() []interface{} {
	var anio, stock interface{}
	if f.Anio != nil {
		anio = *f.Anio
	}
	if f.Stock != nil {
		stock = *f.Stock
	}
	activo := "no"
	if f.Activo {
		activo = "si"
	}
	return []interface{}{
		f.Codigo, f.Nombre, f.Tipo, f.Bodega, f.Varietal, f.Origen, anio,
		f.PrecioBase, f.PrecioFinal, f.Promocion, activo, stock, f.Link, f.Actualizado,
	}
}

// EscribirCatalogoXLSX writes filas as a single-sheet workbook to w.
func EscribirCatalogoXLSX(w io.Writer, filas []FilaCatalogo) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaCatalogo); err != nil {
		return err
	}
	if err := f.SetSheetRow(hojaCatalogo, "A1", &encabezadoCatalogo); err != nil {
		return err
	}
	negrita, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(hojaCatalogo, 1, 1, negrita); err != nil {
		return err
	}

	for i, fila := range filas {
		celda, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		valores := fila.valores()
		if err := f.SetSheetRow(hojaCatalogo, celda, &valores); err != nil {
			return fmt.Errorf("fila %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(hojaCatalogo, "B", "B", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(hojaCatalogo, "M", "M", 40); err != nil {
		return err
	}
	return f.Write(w)
}
