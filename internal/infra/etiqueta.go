package infra

// etiqueta.go renders the shelf label of a product with go-pdf/fpdf: a
// 90x60mm card with name, winery, price and the QR code that resolves the
// public link. The QR image is produced by fpdf's barcode contrib on top of
// boombuler/barcode.

import (
	"fmt"
	"io"

	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/barcode"
)

const (
	etiquetaAncho = 90.0
	etiquetaAlto  = 60.0
	etiquetaQR    = 38.0
	etiquetaMarg  = 4.0
)

// Etiqueta holds the already formatted values printed on a label.
type Etiqueta struct {
	Codigo      string
	Nombre      string
	Bodega      string
	Detalle     string // varietal and vintage, may be empty
	Precio      string
	PrecioAntes string // set when a promotion lowers the price
	Promocion   string
	Link        string
}

// GenerarEtiquetaPDF writes the label of e to w.
func GenerarEtiquetaPDF(w io.Writer, e Etiqueta) error {
	if e.Link == "" {
		return fmt.Errorf("etiqueta %s: link vacio", e.Codigo)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: etiquetaAlto, Ht: etiquetaAncho},
	})
	pdf.SetMargins(etiquetaMarg, etiquetaMarg, etiquetaMarg)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(e.Nombre, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── QR ───────────────────────────────────────────────────────────────────
	key := barcode.RegisterQR(pdf, e.Link, qr.M, qr.Unicode)
	qrX := etiquetaAncho - etiquetaMarg - etiquetaQR
	barcode.Barcode(pdf, key, qrX, etiquetaMarg, etiquetaQR, etiquetaQR, false)

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetXY(qrX, etiquetaMarg+etiquetaQR+1)
	pdf.CellFormat(etiquetaQR, 3, tr(e.Codigo), "", 0, "C", false, 0, "")

	// ── Text column ──────────────────────────────────────────────────────────
	textoW := qrX - etiquetaMarg - 2
	pdf.SetXY(etiquetaMarg, etiquetaMarg)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.MultiCell(textoW, 5, tr(e.Nombre), "", "L", false)

	pdf.SetX(etiquetaMarg)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(textoW, 4, tr(e.Bodega), "", "L", false)
	if e.Detalle != "" {
		pdf.SetX(etiquetaMarg)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(textoW, 4, tr(e.Detalle), "", "L", false)
	}

	// ── Price ────────────────────────────────────────────────────────────────
	y := etiquetaAlto - etiquetaMarg - 14
	if e.PrecioAntes != "" {
		pdf.SetXY(etiquetaMarg, y-5)
		pdf.SetFont("Helvetica", "", 8)
		antes := "$ " + e.PrecioAntes
		pdf.CellFormat(textoW, 4, antes, "", 0, "L", false, 0, "")
		ancho := pdf.GetStringWidth(antes)
		pdf.Line(etiquetaMarg, y-3, etiquetaMarg+ancho, y-3)
	}
	pdf.SetXY(etiquetaMarg, y)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(textoW, 8, "$ "+e.Precio, "", 1, "L", false, 0, "")
	if e.Promocion != "" {
		pdf.SetX(etiquetaMarg)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(170, 20, 40)
		pdf.CellFormat(textoW, 4, tr(e.Promocion), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("etiqueta %s: %w", e.Codigo, err)
	}
	return pdf.Output(w)
}
