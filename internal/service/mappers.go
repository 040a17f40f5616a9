package service

import (
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/promo"
)

// productoAResponse prices p under vigente (nil = no promotion in effect).
func productoAResponse(p *model.Producto, vigente *model.Promocion, loc *time.Location) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:               p.ID,
		CodigoPublico:    p.CodigoPublico,
		Nombre:           p.Nombre,
		TipoBebida:       p.TipoBebida,
		Bodega:           p.Bodega,
		Varietal:         p.Varietal,
		Origen:           p.Origen,
		Anio:             p.Anio,
		DescripcionCorta: p.DescripcionCorta,
		PrecioBase:       p.PrecioBase,
		StockVisible:     p.StockVisible,
		ImagenURL:        p.ImagenURL,
		Activo:           p.Activo,
		CreatedAt:        promo.FormatearFecha(p.CreatedAt, loc),
		UpdatedAt:        promo.FormatearFecha(p.UpdatedAt, loc),
		PrecioOriginal:   p.PrecioBase.Round(2),
	}

	regla := promo.ReglaDe(vigente)
	if regla != nil {
		resp.Promocion = &dto.PromocionVigenteResponse{
			Tipo:   vigente.Tipo,
			Valor:  vigente.Valor,
			Texto:  vigente.TextoVisible,
			Inicio: promo.FormatearFecha(vigente.Inicio, loc),
			Fin:    promo.FormatearFechaOpcional(vigente.Fin, loc),
		}
	}
	resp.PrecioFinal = promo.PrecioFinal(p.PrecioBase, regla)
	return resp
}

func promocionAResponse(p *model.Promocion, loc *time.Location) dto.PromocionResponse {
	return dto.PromocionResponse{
		ID:           p.ID,
		ProductoID:   p.ProductoID,
		Tipo:         p.Tipo,
		Valor:        p.Valor,
		TextoVisible: p.TextoVisible,
		Inicio:       promo.FormatearFecha(p.Inicio, loc),
		Fin:          promo.FormatearFechaOpcional(p.Fin, loc),
		Activo:       p.Activo,
		CreatedAt:    promo.FormatearFecha(p.CreatedAt, loc),
	}
}

func conflictoDe(p *model.Promocion, loc *time.Location) dto.ConflictoPromocion {
	return dto.ConflictoPromocion{
		ID:           p.ID,
		TextoVisible: p.TextoVisible,
		Inicio:       promo.FormatearFecha(p.Inicio, loc),
		Fin:          promo.FormatearFechaOpcional(p.Fin, loc),
	}
}

func adminAResponse(a *model.Administrador) dto.AdminResponse {
	return dto.AdminResponse{ID: a.ID, Username: a.Username, Nombre: a.Nombre}
}
