package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/apierror"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/clock"
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
	limiteBusquedaDefecto = 20
	limiteBusquedaMaximo  = 100
)

// precioMaximo is the first value that does not fit decimal(10,2).
var precioMaximo = decimal.NewFromInt(100_000_000)

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, adminID uint, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	// ObtenerPorCodigo is the public QR lookup; it also counts the scan.
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	Buscar(ctx context.Context, req dto.BusquedaRequest) (*dto.BusquedaResponse, error)
	ListarAdmin(ctx context.Context, filter dto.ProductoAdminFilter) (*dto.ProductoListResponse, error)
	Exportar(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, adminID, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uint) error
	Desactivar(ctx context.Context, adminID, id uint) error
	Reactivar(ctx context.Context, adminID, id uint) error
}

type productoService struct {
	repo     repository.ProductoRepository
	promos   repository.PromocionRepository
	escaneos repository.EscaneoRepository
	reloj    clock.Clock
	cfg      *config.Config
}

func NewProductoService(
	repo repository.ProductoRepository,
	promos repository.PromocionRepository,
	escaneos repository.EscaneoRepository,
	reloj clock.Clock,
	cfg *config.Config,
) ProductoService {
	return &productoService{repo: repo, promos: promos, escaneos: escaneos, reloj: reloj, cfg: cfg}
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *productoService) ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errProducto(err)
	}
	resps, err := s.conPrecios(ctx, []model.Producto{*p})
	if err != nil {
		return nil, err
	}
	resp := resps[0]
	resp.QRLink = s.cfg.QRLink(p.CodigoPublico)
	return &resp, nil
}

func (s *productoService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return nil, apierror.Validation("El codigo es obligatorio", map[string]string{"code": "required"})
	}
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, errProducto(err)
	}

	if s.escaneos != nil {
		if err := s.escaneos.Registrar(ctx, p.CodigoPublico, s.reloj.Now().In(s.cfg.Ubicacion())); err != nil {
			log.Warn().Err(err).Str("public_code", p.CodigoPublico).Msg("no se pudo registrar el escaneo")
		}
	}

	resps, err := s.conPrecios(ctx, []model.Producto{*p})
	if err != nil {
		return nil, err
	}
	return &resps[0], nil
}

func (s *productoService) Buscar(ctx context.Context, req dto.BusquedaRequest) (*dto.BusquedaResponse, error) {
	f := repository.FiltroBusqueda{
		Texto:      strings.TrimSpace(req.Texto),
		Campo:      repository.CampoBusqueda(strings.TrimSpace(req.Campo)),
		PrecioMin:  req.PrecioMin,
		PrecioMax:  req.PrecioMax,
		Anio:       req.Anio,
		TipoBebida: req.TipoBebida,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}

	fields := make(map[string]string)
	if f.Campo != "" && !f.Campo.Valido() {
		fields["field"] = "campo de busqueda no permitido"
	}
	if f.PrecioMin != nil && f.PrecioMin.IsNegative() {
		fields["min_price"] = "no puede ser negativo"
	}
	if f.PrecioMin != nil && f.PrecioMax != nil && f.PrecioMin.GreaterThan(*f.PrecioMax) {
		fields["max_price"] = "debe ser mayor o igual a min_price"
	}
	if f.TipoBebida != nil && !esTipoBebida(*f.TipoBebida) {
		fields["drink_type"] = "tipo de bebida desconocido"
	}
	if len(fields) > 0 {
		return nil, apierror.Validation("Parametros de busqueda invalidos", fields)
	}
	if f.Texto == "" && !f.TieneFiltros() {
		return nil, apierror.Validation("Se requiere un texto de busqueda o al menos un filtro", nil)
	}

	switch {
	case f.Limit <= 0:
		f.Limit = limiteBusquedaDefecto
	case f.Limit > limiteBusquedaMaximo:
		f.Limit = limiteBusquedaMaximo
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	productos, total, err := s.repo.Buscar(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("buscar productos: %w", err)
	}
	data, err := s.conPrecios(ctx, productos)
	if err != nil {
		return nil, err
	}
	return &dto.BusquedaResponse{Productos: data, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

func (s *productoService) ListarAdmin(ctx context.Context, filter dto.ProductoAdminFilter) (*dto.ProductoListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = limiteBusquedaDefecto
	}
	productos, total, err := s.repo.ListAdmin(ctx, repository.FiltroAdmin{
		Estado: filter.Estado,
		Texto:  filter.Q,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	data, err := s.conPrecios(ctx, productos)
	if err != nil {
		return nil, err
	}
	for i := range data {
		data[i].QRLink = s.cfg.QRLink(data[i].CodigoPublico)
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *productoService) Exportar(ctx context.Context) ([]dto.ProductoResponse, error) {
	// Limit -1 lifts the page size.
	productos, _, err := s.repo.ListAdmin(ctx, repository.FiltroAdmin{Estado: repository.EstadoTodos, Limit: -1})
	if err != nil {
		return nil, fmt.Errorf("exportar productos: %w", err)
	}
	data, err := s.conPrecios(ctx, productos)
	if err != nil {
		return nil, err
	}
	for i := range data {
		data[i].QRLink = s.cfg.QRLink(data[i].CodigoPublico)
	}
	return data, nil
}

// conPrecios attaches the promotion in effect and the final price to each
// product with a single promotions query.
func (s *productoService) conPrecios(ctx context.Context, productos []model.Producto) ([]dto.ProductoResponse, error) {
	out := make([]dto.ProductoResponse, len(productos))
	if len(productos) == 0 {
		return out, nil
	}

	ids := make([]uint, len(productos))
	for i := range productos {
		ids[i] = productos[i].ID
	}
	ahora := s.reloj.Now()
	vigentes, err := s.promos.ListVigentesPorProductos(ctx, ids, ahora)
	if err != nil {
		return nil, fmt.Errorf("promociones vigentes: %w", err)
	}
	porProducto := make(map[uint][]model.Promocion, len(vigentes))
	for _, v := range vigentes {
		porProducto[v.ProductoID] = append(porProducto[v.ProductoID], v)
	}

	loc := s.cfg.Ubicacion()
	for i := range productos {
		p := &productos[i]
		out[i] = productoAResponse(p, promo.Vigente(porProducto[p.ID], ahora), loc)
	}
	return out, nil
}

// ── Writes ───────────────────────────────────────────────────────────────────

func (s *productoService) Crear(ctx context.Context, adminID uint, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		CodigoPublico:        strings.TrimSpace(req.CodigoPublico),
		Nombre:               strings.TrimSpace(req.Nombre),
		TipoBebida:           req.TipoBebida,
		Bodega:               strings.TrimSpace(req.Bodega),
		Varietal:             recortar(req.Varietal),
		Origen:               recortar(req.Origen),
		Anio:                 req.Anio,
		DescripcionCorta:     recortar(req.DescripcionCorta),
		PrecioBase:           req.PrecioBase.Round(2),
		StockVisible:         req.StockVisible,
		ImagenURL:            recortar(req.ImagenURL),
		Activo:               true,
		ModificadoPorAdminID: &adminID,
	}
	if err := validarProducto(p); err != nil {
		return nil, err
	}

	existe, err := s.repo.ExisteCodigo(ctx, p.CodigoPublico)
	if err != nil {
		return nil, fmt.Errorf("verificar codigo: %w", err)
	}
	if existe {
		return nil, apierror.Conflict("Ya existe un producto con ese codigo publico",
			map[string]string{"public_code": p.CodigoPublico})
	}
	if err := s.verificarDuplicado(ctx, p, nil); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("Ya existe un producto con ese codigo publico",
				map[string]string{"public_code": p.CodigoPublico})
		}
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	log.Info().Uint("producto_id", p.ID).Str("public_code", p.CodigoPublico).Uint("admin_id", adminID).Msg("producto creado")

	resp := productoAResponse(p, nil, s.cfg.Ubicacion())
	resp.QRLink = s.cfg.QRLink(p.CodigoPublico)
	return &resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, adminID, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	actual, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errProducto(err)
	}
	if req.CodigoPublico != nil && strings.TrimSpace(*req.CodigoPublico) != actual.CodigoPublico {
		return nil, apierror.Validation("El codigo publico no se puede modificar",
			map[string]string{"public_code": "inmutable"})
	}

	cambios := repository.NuevosCambiosProducto()
	if req.Nombre != nil {
		cambios.Nombre(strings.TrimSpace(*req.Nombre))
	}
	if req.TipoBebida != nil {
		cambios.TipoBebida(*req.TipoBebida)
	}
	if req.Bodega != nil {
		cambios.Bodega(strings.TrimSpace(*req.Bodega))
	}
	if req.Varietal != nil {
		cambios.Varietal(recortar(req.Varietal))
	}
	if req.Origen != nil {
		cambios.Origen(recortar(req.Origen))
	}
	if req.Anio != nil {
		cambios.Anio(req.Anio)
	}
	if req.DescripcionCorta != nil {
		cambios.DescripcionCorta(recortar(req.DescripcionCorta))
	}
	if req.PrecioBase != nil {
		cambios.PrecioBase(req.PrecioBase.Round(2))
	}
	if req.StockVisible != nil {
		cambios.StockVisible(req.StockVisible)
	}
	if req.ImagenURL != nil {
		cambios.ImagenURL(recortar(req.ImagenURL))
	}
	if cambios.Vacio() {
		return nil, apierror.Validation("No se enviaron campos para actualizar", nil)
	}

	merged := *actual
	cambios.AplicarA(&merged)
	if err := validarProducto(&merged); err != nil {
		return nil, err
	}
	if merged.Activo {
		if err := s.verificarDuplicado(ctx, &merged, &id); err != nil {
			return nil, err
		}
	}

	cambios.ModificadoPor(adminID)
	if err := s.repo.Update(ctx, id, cambios); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	log.Info().Uint("producto_id", id).Uint("admin_id", adminID).Msg("producto actualizado")
	return s.ObtenerPorID(ctx, id)
}

func (s *productoService) Eliminar(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	if !ok {
		return apierror.NotFound("Producto no encontrado")
	}
	log.Info().Uint("producto_id", id).Msg("producto eliminado")
	return nil
}

func (s *productoService) Desactivar(ctx context.Context, adminID, id uint) error {
	ok, err := s.repo.SetActivo(ctx, id, false, adminID)
	if err != nil {
		return fmt.Errorf("desactivar producto: %w", err)
	}
	if !ok {
		return apierror.NotFound("Producto no encontrado")
	}
	return nil
}

// Reactivar re-checks the duplicate invariant: another active product may
// have taken the same identity while this one was inactive.
func (s *productoService) Reactivar(ctx context.Context, adminID, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errProducto(err)
	}
	if p.Activo {
		return nil
	}
	if err := s.verificarDuplicado(ctx, p, &id); err != nil {
		return err
	}
	if _, err := s.repo.SetActivo(ctx, id, true, adminID); err != nil {
		return fmt.Errorf("reactivar producto: %w", err)
	}
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *productoService) verificarDuplicado(ctx context.Context, p *model.Producto, excluir *uint) error {
	dup, err := s.repo.FindDuplicado(ctx, repository.ClaveDuplicado{
		Nombre:     p.Nombre,
		Bodega:     p.Bodega,
		TipoBebida: p.TipoBebida,
		Anio:       p.Anio,
		ExcluirID:  excluir,
	})
	if err != nil {
		return fmt.Errorf("buscar duplicado: %w", err)
	}
	if dup != nil {
		return apierror.Conflict("Ya existe un producto activo con el mismo nombre, bodega, tipo y cosecha",
			map[string]any{"id": dup.ID, "public_code": dup.CodigoPublico, "name": dup.Nombre})
	}
	return nil
}

// validarProducto checks what the request tags cannot: blank-after-trim
// values and the decimal(10,2) range.
func validarProducto(p *model.Producto) error {
	fields := make(map[string]string)
	if p.CodigoPublico == "" {
		fields["public_code"] = "required"
	}
	if p.Nombre == "" {
		fields["name"] = "required"
	}
	if p.Bodega == "" {
		fields["winery_distillery"] = "required"
	}
	if !esTipoBebida(p.TipoBebida) {
		fields["drink_type"] = "tipo de bebida desconocido"
	}
	if !p.PrecioBase.IsPositive() {
		fields["base_price"] = "debe ser mayor a 0"
	} else if p.PrecioBase.GreaterThanOrEqual(precioMaximo) {
		fields["base_price"] = "excede el maximo admitido"
	}
	if p.StockVisible != nil && *p.StockVisible < 0 {
		fields["visible_stock"] = "no puede ser negativo"
	}
	if len(fields) > 0 {
		return apierror.Validation("Datos de producto invalidos", fields)
	}
	return nil
}

func esTipoBebida(t string) bool {
	for _, v := range model.TiposBebida {
		if t == v {
			return true
		}
	}
	return false
}

// recortar trims s and maps a blank value to nil.
func recortar(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func errProducto(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound("Producto no encontrado")
	}
	return fmt.Errorf("leer producto: %w", err)
}
