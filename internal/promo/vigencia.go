package promo

import (
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"
)

// FinIndefinido stands in for a NULL end_at when windows are compared.
var FinIndefinido = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

func finOIndefinido(fin *time.Time) time.Time {
	if fin == nil {
		return FinIndefinido
	}
	return *fin
}

// Solapan reports whether [inicio1, fin1] and [inicio2, fin2] share an instant.
// Both bounds are inclusive, so windows that touch at one second overlap.
func Solapan(inicio1 time.Time, fin1 *time.Time, inicio2 time.Time, fin2 *time.Time) bool {
	return !inicio1.After(finOIndefinido(fin2)) && !inicio2.After(finOIndefinido(fin1))
}

// BuscarSolapamiento returns the first active promotion in existentes whose
// window overlaps [inicio, fin], skipping the one with id excluirID.
// Callers pass the promotions of a single product.
func BuscarSolapamiento(existentes []model.Promocion, inicio time.Time, fin *time.Time, excluirID *uint) *model.Promocion {
	for i := range existentes {
		p := &existentes[i]
		if !p.Activo {
			continue
		}
		if excluirID != nil && p.ID == *excluirID {
			continue
		}
		if Solapan(p.Inicio, p.Fin, inicio, fin) {
			return p
		}
	}
	return nil
}

// EstaVigente reports whether p is in effect at ahora.
func EstaVigente(p *model.Promocion, ahora time.Time) bool {
	if !p.Activo || p.Inicio.After(ahora) {
		return false
	}
	return p.Fin == nil || !p.Fin.Before(ahora)
}

// Vigente picks the promotion in effect at ahora. When several qualify
// (only possible after an overlapping edit) the latest start wins, then the
// highest id.
func Vigente(promos []model.Promocion, ahora time.Time) *model.Promocion {
	var elegida *model.Promocion
	for i := range promos {
		p := &promos[i]
		if !EstaVigente(p, ahora) {
			continue
		}
		if elegida == nil ||
			p.Inicio.After(elegida.Inicio) ||
			(p.Inicio.Equal(elegida.Inicio) && p.ID > elegida.ID) {
			elegida = p
		}
	}
	return elegida
}
