package promo

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// FormatoFecha is the only timestamp layout accepted and emitted by the API.
const FormatoFecha = "2006-01-02 15:04:05"

var reFecha = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

// ParsearFecha validates s against "YYYY-MM-DD HH:MM:SS" and then against the
// calendar (2024-02-30 is rejected), interpreting it in loc.
func ParsearFecha(s string, loc *time.Location) (time.Time, error) {
	if !reFecha.MatchString(s) {
		return time.Time{}, errors.New("formato invalido, se espera YYYY-MM-DD HH:MM:SS")
	}
	t, err := time.ParseInLocation(FormatoFecha, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inexistente: %s", s)
	}
	return t, nil
}

// FormatearFecha renders t in loc using FormatoFecha.
func FormatearFecha(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(FormatoFecha)
}

// FormatearFechaOpcional is FormatearFecha for nullable columns.
func FormatearFechaOpcional(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := FormatearFecha(*t, loc)
	return &s
}
