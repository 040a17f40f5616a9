package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/apierror"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/config"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/promo"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	textoPromocionMin = 3
	textoPromocionMax = 255
)

// PromocionService defines the promotion lifecycle. Only creation enforces
// the non-overlap rule; updates report overlaps as warnings.
type PromocionService interface {
	Crear(ctx context.Context, req dto.CrearPromocionRequest) (*dto.PromocionResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.PromocionResponse, error)
	Listar(ctx context.Context, filter dto.PromocionFilter) ([]dto.PromocionResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarPromocionRequest) (*dto.PromocionActualizadaResponse, error)
	Eliminar(ctx context.Context, id uint) error
	Desactivar(ctx context.Context, id uint) error
}

type promocionService struct {
	repo      repository.PromocionRepository
	productos repository.ProductoRepository
	cfg       *config.Config
}

func NewPromocionService(repo repository.PromocionRepository, productos repository.ProductoRepository, cfg *config.Config) PromocionService {
	return &promocionService{repo: repo, productos: productos, cfg: cfg}
}

// camposPromocion is a request that passed every product-independent check.
type camposPromocion struct {
	tipo   promo.Tipo
	valor  decimal.Decimal
	texto  string
	inicio time.Time
	fin    *time.Time
}

func (s *promocionService) validarCampos(tipo string, valor decimal.Decimal, texto, inicio string, fin *string) (*camposPromocion, error) {
	loc := s.cfg.Ubicacion()
	c := &camposPromocion{
		tipo:  promo.Tipo(strings.TrimSpace(tipo)),
		valor: valor.Round(2),
		texto: strings.TrimSpace(texto),
	}
	fields := make(map[string]string)

	if n := utf8.RuneCountInString(c.texto); n < textoPromocionMin || n > textoPromocionMax {
		fields["visible_text"] = fmt.Sprintf("debe tener entre %d y %d caracteres", textoPromocionMin, textoPromocionMax)
	}

	var pe *promo.ErrorParametro
	if err := promo.ValidarParametro(c.tipo, c.valor); errors.As(err, &pe) {
		fields[pe.Campo] = pe.Mensaje
	}

	t, err := promo.ParsearFecha(strings.TrimSpace(inicio), loc)
	if err != nil {
		fields["start_at"] = err.Error()
	}
	c.inicio = t

	if fin != nil && strings.TrimSpace(*fin) != "" {
		t, err := promo.ParsearFecha(strings.TrimSpace(*fin), loc)
		if err != nil {
			fields["end_at"] = err.Error()
		} else {
			c.fin = &t
		}
	}
	if _, malInicio := fields["start_at"]; !malInicio && c.fin != nil && c.fin.Before(c.inicio) {
		fields["end_at"] = "debe ser posterior o igual a start_at"
	}

	if len(fields) > 0 {
		return nil, apierror.Validation("Datos de promocion invalidos", fields)
	}
	return c, nil
}

// productoActivo loads the product a promotion is attached to.
func (s *promocionService) productoActivo(ctx context.Context, id uint) (*model.Producto, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		return nil, errProducto(err)
	}
	if !p.Activo {
		return nil, errProductoInactivo()
	}
	return p, nil
}

func errProductoInactivo() error {
	return apierror.Validation("El producto esta inactivo",
		map[string]string{"product_id": "el producto esta inactivo"})
}

func reglaPara(c *camposPromocion, prod *model.Producto) (promo.Regla, error) {
	regla, err := promo.NuevaRegla(c.tipo, c.valor, prod.PrecioBase)
	if err != nil {
		var pe *promo.ErrorParametro
		if errors.As(err, &pe) {
			return nil, apierror.Validation("Datos de promocion invalidos", map[string]string{pe.Campo: pe.Mensaje})
		}
		return nil, err
	}
	return regla, nil
}

func (s *promocionService) Crear(ctx context.Context, req dto.CrearPromocionRequest) (*dto.PromocionResponse, error) {
	c, err := s.validarCampos(req.Tipo, req.Valor, req.TextoVisible, req.Inicio, req.Fin)
	if err != nil {
		return nil, err
	}
	prod, err := s.productoActivo(ctx, req.ProductoID)
	if err != nil {
		return nil, err
	}
	regla, err := reglaPara(c, prod)
	if err != nil {
		return nil, err
	}

	p := &model.Promocion{
		ProductoID:   prod.ID,
		Tipo:         string(regla.Tipo()),
		Valor:        regla.Valor(),
		TextoVisible: c.texto,
		Inicio:       c.inicio,
		Fin:          c.fin,
		Activo:       true,
	}
	loc := s.cfg.Ubicacion()
	err = s.repo.CrearExclusiva(ctx, p, func(activas []model.Promocion) error {
		if choque := promo.BuscarSolapamiento(activas, c.inicio, c.fin, nil); choque != nil {
			return apierror.Conflict("La promocion se superpone con otra promocion activa del producto", conflictoDe(choque, loc))
		}
		return nil
	})
	if err != nil {
		if _, ok := apierror.As(err); ok {
			return nil, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		if errors.Is(err, repository.ErrProductoInactivo) {
			return nil, errProductoInactivo()
		}
		return nil, fmt.Errorf("crear promocion: %w", err)
	}

	log.Info().Uint("promocion_id", p.ID).Uint("producto_id", p.ProductoID).Str("tipo", p.Tipo).Msg("promocion creada")
	resp := promocionAResponse(p, loc)
	return &resp, nil
}

func (s *promocionService) ObtenerPorID(ctx context.Context, id uint) (*dto.PromocionResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errPromocion(err)
	}
	resp := promocionAResponse(p, s.cfg.Ubicacion())
	return &resp, nil
}

func (s *promocionService) Listar(ctx context.Context, filter dto.PromocionFilter) ([]dto.PromocionResponse, error) {
	promos, err := s.repo.List(ctx, filter.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("listar promociones: %w", err)
	}
	loc := s.cfg.Ubicacion()
	out := make([]dto.PromocionResponse, len(promos))
	for i := range promos {
		out[i] = promocionAResponse(&promos[i], loc)
	}
	return out, nil
}

// Actualizar applies the same checks as Crear except the overlap rule. A
// resulting overlap is logged and returned as a warning.
func (s *promocionService) Actualizar(ctx context.Context, id uint, req dto.ActualizarPromocionRequest) (*dto.PromocionActualizadaResponse, error) {
	actual, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errPromocion(err)
	}
	if req.ProductoID != nil && *req.ProductoID != actual.ProductoID {
		return nil, apierror.Validation("El producto de una promocion no se puede modificar",
			map[string]string{"product_id": "inmutable"})
	}

	c, err := s.validarCampos(req.Tipo, req.Valor, req.TextoVisible, req.Inicio, req.Fin)
	if err != nil {
		return nil, err
	}
	prod, err := s.productoActivo(ctx, actual.ProductoID)
	if err != nil {
		return nil, err
	}
	regla, err := reglaPara(c, prod)
	if err != nil {
		return nil, err
	}

	actual.Tipo = string(regla.Tipo())
	actual.Valor = regla.Valor()
	actual.TextoVisible = c.texto
	actual.Inicio = c.inicio
	actual.Fin = c.fin
	if err := s.repo.Update(ctx, actual); err != nil {
		return nil, fmt.Errorf("actualizar promocion: %w", err)
	}

	loc := s.cfg.Ubicacion()
	resp := &dto.PromocionActualizadaResponse{PromocionResponse: promocionAResponse(actual, loc)}
	if actual.Activo {
		activas, err := s.repo.ListActivasPorProducto(ctx, actual.ProductoID)
		if err != nil {
			log.Warn().Err(err).Uint("promocion_id", id).Msg("no se pudo verificar superposicion")
		} else if choque := promo.BuscarSolapamiento(activas, c.inicio, c.fin, &id); choque != nil {
			log.Warn().Uint("promocion_id", id).Uint("superpuesta_con", choque.ID).Msg("promocion editada se superpone con otra activa")
			resp.Advertencias = append(resp.Advertencias, fmt.Sprintf(
				"La promocion se superpone con la promocion #%d (%q, desde %s)",
				choque.ID, choque.TextoVisible, promo.FormatearFecha(choque.Inicio, loc)))
		}
	}
	return resp, nil
}

func (s *promocionService) Eliminar(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar promocion: %w", err)
	}
	if !ok {
		return apierror.NotFound("Promocion no encontrada")
	}
	log.Info().Uint("promocion_id", id).Msg("promocion eliminada")
	return nil
}

func (s *promocionService) Desactivar(ctx context.Context, id uint) error {
	ok, err := s.repo.Desactivar(ctx, id)
	if err != nil {
		return fmt.Errorf("desactivar promocion: %w", err)
	}
	if !ok {
		return apierror.NotFound("Promocion no encontrada")
	}
	return nil
}

func errPromocion(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound("Promocion no encontrada")
	}
	return fmt.Errorf("leer promocion: %w", err)
}
