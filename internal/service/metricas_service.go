package service

import (
	"context"
	"fmt"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/clock"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/config"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	diasEscaneos      = 7
	topCodigosEscanes = 10
)

type MetricasService interface {
	Obtener(ctx context.Context) (*dto.MetricasResponse, error)
}

type metricasService struct {
	productos repository.ProductoRepository
	promos    repository.PromocionRepository
	escaneos  repository.EscaneoRepository
	reloj     clock.Clock
	cfg       *config.Config
}

func NewMetricasService(
	productos repository.ProductoRepository,
	promos repository.PromocionRepository,
	escaneos repository.EscaneoRepository,
	reloj clock.Clock,
	cfg *config.Config,
) MetricasService {
	return &metricasService{productos: productos, promos: promos, escaneos: escaneos, reloj: reloj, cfg: cfg}
}

// Obtener gathers catalog counts from Postgres and scan counters from Redis
// in parallel. A Redis failure only empties the scan sections.
func (s *metricasService) Obtener(ctx context.Context) (*dto.MetricasResponse, error) {
	ahora := s.reloj.Now().In(s.cfg.Ubicacion())
	resp := &dto.MetricasResponse{
		EscaneosPorDia: []dto.EscaneosDiaResponse{},
		MasEscaneados:  []dto.CodigoEscaneadoResponse{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.productos.Resumen(gctx)
		if err != nil {
			return fmt.Errorf("resumen de catalogo: %w", err)
		}
		resp.Productos = dto.ResumenProductosResponse{
			Total: r.Total, Activos: r.Activos, Inactivos: r.Inactivos, PorTipo: r.PorTipo,
		}
		return nil
	})
	g.Go(func() error {
		n, err := s.promos.ContarVigentes(gctx, ahora)
		if err != nil {
			return fmt.Errorf("promociones vigentes: %w", err)
		}
		resp.PromocionesVigentes = n
		return nil
	})
	g.Go(func() error {
		dias, err := s.escaneos.PorDia(gctx, ahora, diasEscaneos)
		if err != nil {
			log.Warn().Err(err).Msg("metricas: escaneos por dia no disponibles")
			return nil
		}
		for _, d := range dias {
			resp.EscaneosPorDia = append(resp.EscaneosPorDia, dto.EscaneosDiaResponse{Fecha: d.Fecha, Cantidad: d.Cantidad})
		}
		return nil
	})
	g.Go(func() error {
		top, err := s.escaneos.MasEscaneados(gctx, topCodigosEscanes)
		if err != nil {
			log.Warn().Err(err).Msg("metricas: ranking de escaneos no disponible")
			return nil
		}
		for _, c := range top {
			resp.MasEscaneados = append(resp.MasEscaneados, dto.CodigoEscaneadoResponse{CodigoPublico: c.Codigo, Cantidad: c.Cantidad})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}
