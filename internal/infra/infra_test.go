package infra

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerarEtiquetaPDF(t *testing.T) {
	var buf bytes.Buffer
	err := GenerarEtiquetaPDF(&buf, Etiqueta{
		Codigo:      "T-001",
		Nombre:      "Gran Reserva Año 2020",
		Bodega:      "Bodega T",
		Detalle:     "Malbec 2020",
		Precio:      "800.00",
		PrecioAntes: "1000.00",
		Promocion:   "20% OFF",
		Link:        "https://vinos.example.com/p/T-001",
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestGenerarEtiquetaPDF_SinLink(t *testing.T) {
	var buf bytes.Buffer
	err := GenerarEtiquetaPDF(&buf, Etiqueta{Codigo: "T-001", Nombre: "X", Precio: "1.00"})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestEscribirCatalogoXLSX(t *testing.T) {
	anio := 2020
	filas := []FilaCatalogo{
		{Codigo: "T-001", Nombre: "Test Wine", Tipo: "vino", Bodega: "Bodega T", Anio: &anio,
			PrecioBase: 1000, PrecioFinal: 800, Promocion: "20% OFF", Activo: true,
			Link: "https://vinos.example.com/p/T-001", Actualizado: "2024-06-01 12:00:00"},
		{Codigo: "G-01", Nombre: "Gin", Tipo: "gin", Bodega: "Destileria", PrecioBase: 50, PrecioFinal: 50},
	}

	var buf bytes.Buffer
	require.NoError(t, EscribirCatalogoXLSX(&buf, filas))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(hojaCatalogo)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Codigo", rows[0][0])
	assert.Equal(t, []string{"T-001", "Test Wine", "vino", "Bodega T", "", "", "2020", "1000", "800", "20% OFF", "si"}, rows[1][:11])
	assert.Equal(t, "no", rows[2][10])
}

func TestMigraciones_Pareadas(t *testing.T) {
	entradas, err := fs.ReadDir(migracionesFS, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entradas)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entradas {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups[strings.TrimSuffix(e.Name(), ".up.sql")] = true
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs[strings.TrimSuffix(e.Name(), ".down.sql")] = true
		}
	}
	assert.Equal(t, ups, downs)
}
