package promo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsearFecha(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	got, err := ParsearFecha("2024-01-01 00:00:00", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Equal(got))
	assert.Equal(t, "2024-01-01 00:00:00", FormatearFecha(got, loc))
	assert.Equal(t, "2024-01-01 03:00:00", FormatearFecha(got, time.UTC))
}

func TestParsearFecha_Rechazos(t *testing.T) {
	for _, s := range []string{
		"",
		"2024-01-01",
		"2024-01-01T00:00:00",
		"2024-1-01 00:00:00",
		"2024-01-01 00:00:00Z",
		" 2024-01-01 00:00:00",
		"2024-02-30 00:00:00",
		"2023-02-29 10:00:00",
		"2024-13-01 00:00:00",
		"2024-01-01 24:00:00",
	} {
		_, err := ParsearFecha(s, time.UTC)
		assert.Error(t, err, "%q deberia ser rechazada", s)
	}

	_, err := ParsearFecha("2024-02-29 23:59:59", time.UTC)
	assert.NoError(t, err, "2024 es bisiesto")
}

func TestFormatearFechaOpcional(t *testing.T) {
	assert.Nil(t, FormatearFechaOpcional(nil, time.UTC))

	v := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	got := FormatearFechaOpcional(&v, time.UTC)
	require.NotNil(t, got)
	assert.Equal(t, "2024-05-02 08:30:00", *got)
}
