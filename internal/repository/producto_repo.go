package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// so they can be tested against in-memory stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	// FindByCodigo resolves a QR code. Only active products match.
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	// ExisteCodigo checks the unique public_code across active and inactive rows.
	ExisteCodigo(ctx context.Context, codigo string) (bool, error)
	Buscar(ctx context.Context, f FiltroBusqueda) ([]model.Producto, int64, error)
	ListAdmin(ctx context.Context, f FiltroAdmin) ([]model.Producto, int64, error)
	// FindDuplicado returns nil, nil when no active product collides.
	FindDuplicado(ctx context.Context, d ClaveDuplicado) (*model.Producto, error)
	Update(ctx context.Context, id uint, cambios *CambiosProducto) error
	Delete(ctx context.Context, id uint) (bool, error)
	SetActivo(ctx context.Context, id uint, activo bool, adminID uint) (bool, error)
	Resumen(ctx context.Context) (*ResumenCatalogo, error)
}

// ── Filters ──────────────────────────────────────────────────────────────────

// CampoBusqueda restricts free-text search to one column. Values are the
// column names themselves, so only the constants below can reach SQL.
type CampoBusqueda string

const (
	CampoNombre     CampoBusqueda = "name"
	CampoTipoBebida CampoBusqueda = "drink_type"
	CampoVarietal   CampoBusqueda = "varietal"
	CampoOrigen     CampoBusqueda = "origin"
	CampoBodega     CampoBusqueda = "winery_distillery"
	CampoCodigo     CampoBusqueda = "public_code"
)

// CamposBusqueda lists the accepted values of the search "field" parameter.
var CamposBusqueda = []CampoBusqueda{CampoNombre, CampoTipoBebida, CampoVarietal, CampoOrigen, CampoBodega, CampoCodigo}

func (c CampoBusqueda) Valido() bool {
	for _, v := range CamposBusqueda {
		if c == v {
			return true
		}
	}
	return false
}

// FiltroBusqueda is the public catalog search. Campo == "" searches
// public_code, name and drink_type at once.
type FiltroBusqueda struct {
	Texto      string
	Campo      CampoBusqueda
	PrecioMin  *decimal.Decimal
	PrecioMax  *decimal.Decimal
	Anio       *int
	TipoBebida *string
	Limit      int
	Offset     int
}

// TieneFiltros reports whether any non-text filter is set.
func (f FiltroBusqueda) TieneFiltros() bool {
	return f.PrecioMin != nil || f.PrecioMax != nil || f.Anio != nil || f.TipoBebida != nil
}

// Estado filters for the admin listing.
const (
	EstadoActivos   = "activos"
	EstadoInactivos = "inactivos"
	EstadoTodos     = "todos"
)

type FiltroAdmin struct {
	Estado string
	Texto  string
	Limit  int
	Offset int
}

// ClaveDuplicado identifies a product for duplicate detection. A nil Anio
// matches any vintage; a set Anio matches the same vintage or a NULL one.
type ClaveDuplicado struct {
	Nombre     string
	Bodega     string
	TipoBebida string
	Anio       *int
	ExcluirID  *uint
}

type ResumenCatalogo struct {
	Total     int64
	Activos   int64
	Inactivos int64
	PorTipo   map[string]int64
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("public_code = ? AND is_active = ?", codigo, true).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) ExisteCodigo(ctx context.Context, codigo string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Where("public_code = ?", codigo).Count(&n).Error
	return n > 0, err
}

// escaparLike neutralizes LIKE metacharacters in user input. Postgres uses
// backslash as the default LIKE escape.
func escaparLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// filtroBusqueda is shared by the count and the page query so that total
// always describes the same row set as the page.
func filtroBusqueda(f FiltroBusqueda) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Where("is_active = ?", true)

		if texto := strings.TrimSpace(f.Texto); texto != "" {
			esc := escaparLike(texto)
			switch f.Campo {
			case "":
				like := "%" + esc + "%"
				q = q.Where("(public_code ILIKE ? OR name ILIKE ? OR drink_type ILIKE ?)", like, like, like)
			case CampoNombre:
				q = q.Where("name ILIKE ?", esc+"%")
			case CampoCodigo:
				// No wildcards: case-insensitive exact match.
				q = q.Where("public_code ILIKE ?", esc)
			default:
				q = q.Where(string(f.Campo)+" ILIKE ?", "%"+esc+"%")
			}
		}

		if f.PrecioMin != nil {
			q = q.Where("base_price >= ?", *f.PrecioMin)
		}
		if f.PrecioMax != nil {
			q = q.Where("base_price <= ?", *f.PrecioMax)
		}
		if f.Anio != nil {
			q = q.Where("vintage_year = ?", *f.Anio)
		}
		if f.TipoBebida != nil {
			q = q.Where("drink_type = ?", *f.TipoBebida)
		}
		return q
	}
}

func (r *productoRepo) Buscar(ctx context.Context, f FiltroBusqueda) ([]model.Producto, int64, error) {
	if f.Campo != "" && !f.Campo.Valido() {
		return nil, 0, errors.New("campo de busqueda no permitido: " + string(f.Campo))
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Producto{}).Scopes(filtroBusqueda(f)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Scopes(filtroBusqueda(f)).
		Order("name ASC").Order("id ASC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&productos).Error
	return productos, total, err
}

func filtroAdmin(f FiltroAdmin) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		switch f.Estado {
		case EstadoInactivos:
			q = q.Where("is_active = ?", false)
		case EstadoTodos:
		default:
			q = q.Where("is_active = ?", true)
		}
		if texto := strings.TrimSpace(f.Texto); texto != "" {
			like := "%" + escaparLike(texto) + "%"
			q = q.Where("(name ILIKE ? OR public_code ILIKE ?)", like, like)
		}
		return q
	}
}

func (r *productoRepo) ListAdmin(ctx context.Context, f FiltroAdmin) ([]model.Producto, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Producto{}).Scopes(filtroAdmin(f)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Scopes(filtroAdmin(f)).
		Order("updated_at DESC").Order("id DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&productos).Error
	return productos, total, err
}

func consultaDuplicado(q *gorm.DB, d ClaveDuplicado) *gorm.DB {
	q = q.Where("is_active = ?", true).
		Where("LOWER(TRIM(name)) = LOWER(TRIM(?))", d.Nombre).
		Where("LOWER(TRIM(winery_distillery)) = LOWER(TRIM(?))", d.Bodega).
		Where("LOWER(TRIM(drink_type)) = LOWER(TRIM(?))", d.TipoBebida)
	if d.Anio != nil {
		q = q.Where("(vintage_year = ? OR vintage_year IS NULL)", *d.Anio)
	}
	if d.ExcluirID != nil {
		q = q.Where("id <> ?", *d.ExcluirID)
	}
	return q
}

func (r *productoRepo) FindDuplicado(ctx context.Context, d ClaveDuplicado) (*model.Producto, error) {
	var p model.Producto
	err := consultaDuplicado(r.db.WithContext(ctx), d).Order("id ASC").Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Update(ctx context.Context, id uint, cambios *CambiosProducto) error {
	if cambios.Vacio() {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Updates(cambios.Columnas()).Error
}

// Delete removes the row; the FK cascade drops its promotions.
func (r *productoRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *productoRepo) SetActivo(ctx context.Context, id uint, activo bool, adminID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": activo, "last_modified_by_admin_id": adminID})
	return res.RowsAffected > 0, res.Error
}

func (r *productoRepo) Resumen(ctx context.Context) (*ResumenCatalogo, error) {
	var filas []struct {
		TipoBebida string
		Activo     bool
		Cantidad   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Select("drink_type AS tipo_bebida, is_active AS activo, COUNT(*) AS cantidad").
		Group("drink_type, is_active").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	res := &ResumenCatalogo{PorTipo: make(map[string]int64)}
	for _, f := range filas {
		res.Total += f.Cantidad
		if f.Activo {
			res.Activos += f.Cantidad
			res.PorTipo[f.TipoBebida] += f.Cantidad
		} else {
			res.Inactivos += f.Cantidad
		}
	}
	return res, nil
}
