package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/clock"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/config"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/promo"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/repository"

	"gorm.io/gorm"
)

// ── Products ─────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	mu           sync.Mutex
	productos    map[uint]*model.Producto
	seq          uint
	ultimoFiltro repository.FiltroBusqueda
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uint]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = r.seq
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uint) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.productos {
		if p.CodigoPublico == codigo && p.Activo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) ExisteCodigo(_ context.Context, codigo string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.productos {
		if p.CodigoPublico == codigo {
			return true, nil
		}
	}
	return false, nil
}

// Buscar only honours Texto against name; the SQL predicates are covered by
// the repository tests.
func (r *stubProductoRepo) Buscar(_ context.Context, f repository.FiltroBusqueda) ([]model.Producto, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ultimoFiltro = f
	var out []model.Producto
	for _, p := range r.ordenados() {
		if !p.Activo {
			continue
		}
		if f.Texto != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(f.Texto)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListAdmin(_ context.Context, f repository.FiltroAdmin) ([]model.Producto, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Producto
	for _, p := range r.ordenados() {
		switch f.Estado {
		case repository.EstadoInactivos:
			if p.Activo {
				continue
			}
		case repository.EstadoTodos:
		default:
			if !p.Activo {
				continue
			}
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) FindDuplicado(_ context.Context, d repository.ClaveDuplicado) (*model.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	for _, p := range r.ordenados() {
		if !p.Activo || (d.ExcluirID != nil && p.ID == *d.ExcluirID) {
			continue
		}
		if norm(p.Nombre) != norm(d.Nombre) || norm(p.Bodega) != norm(d.Bodega) || norm(p.TipoBebida) != norm(d.TipoBebida) {
			continue
		}
		if d.Anio != nil && p.Anio != nil && *p.Anio != *d.Anio {
			continue
		}
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *stubProductoRepo) Update(_ context.Context, id uint, cambios *repository.CambiosProducto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cambios.AplicarA(p)
	p.UpdatedAt = time.Now()
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.productos[id]; !ok {
		return false, nil
	}
	delete(r.productos, id)
	return true, nil
}

func (r *stubProductoRepo) SetActivo(_ context.Context, id uint, activo bool, adminID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return false, nil
	}
	p.Activo = activo
	p.ModificadoPorAdminID = &adminID
	return true, nil
}

func (r *stubProductoRepo) Resumen(_ context.Context) (*repository.ResumenCatalogo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := &repository.ResumenCatalogo{PorTipo: map[string]int64{}}
	for _, p := range r.productos {
		res.Total++
		if p.Activo {
			res.Activos++
			res.PorTipo[p.TipoBebida]++
		} else {
			res.Inactivos++
		}
	}
	return res, nil
}

func (r *stubProductoRepo) ordenados() []*model.Producto {
	out := make([]*model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubProductoRepo) marcarInactivo(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productos[id].Activo = false
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Promotions ───────────────────────────────────────────────────────────────

type stubPromocionRepo struct {
	mu     sync.Mutex
	promos map[uint]*model.Promocion
	seq    uint
	reloj  clock.Clock

	// productos, when set, is re-read under the lock like the product row.
	productos *stubProductoRepo
	// antesDeBloquear runs before the lock is taken.
	antesDeBloquear func()
}

func newStubPromocionRepo(reloj clock.Clock) *stubPromocionRepo {
	return &stubPromocionRepo{promos: make(map[uint]*model.Promocion), reloj: reloj}
}

// CrearExclusiva holds the mutex across validar and the insert, standing in
// for the row lock.
func (r *stubPromocionRepo) CrearExclusiva(ctx context.Context, p *model.Promocion, validar func([]model.Promocion) error) error {
	if r.antesDeBloquear != nil {
		r.antesDeBloquear()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.productos != nil {
		prod, err := r.productos.FindByID(ctx, p.ProductoID)
		if err != nil {
			return err
		}
		if !prod.Activo {
			return repository.ErrProductoInactivo
		}
	}
	if err := validar(r.activasDe(p.ProductoID)); err != nil {
		return err
	}
	r.seq++
	p.ID = r.seq
	p.CreatedAt = r.reloj.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.promos[p.ID] = &cp
	return nil
}

func (r *stubPromocionRepo) FindByID(_ context.Context, id uint) (*model.Promocion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPromocionRepo) ListActivasPorProducto(_ context.Context, productoID uint) ([]model.Promocion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activasDe(productoID), nil
}

func (r *stubPromocionRepo) ListVigentesPorProductos(_ context.Context, ids []uint, ahora time.Time) ([]model.Promocion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Promocion
	for _, id := range ids {
		for _, p := range r.activasDe(id) {
			if promo.EstaVigente(&p, ahora) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (r *stubPromocionRepo) List(_ context.Context, productoID *uint) ([]model.Promocion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Promocion
	for _, p := range r.promos {
		if productoID == nil || p.ProductoID == *productoID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubPromocionRepo) Update(_ context.Context, p *model.Promocion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.promos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.promos[p.ID] = &cp
	return nil
}

func (r *stubPromocionRepo) Delete(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.promos[id]; !ok {
		return false, nil
	}
	delete(r.promos, id)
	return true, nil
}

func (r *stubPromocionRepo) Desactivar(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promos[id]
	if !ok {
		return false, nil
	}
	p.Activo = false
	return true, nil
}

func (r *stubPromocionRepo) ContarVigentes(_ context.Context, ahora time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.promos {
		if promo.EstaVigente(p, ahora) {
			n++
		}
	}
	return n, nil
}

func (r *stubPromocionRepo) activasDe(productoID uint) []model.Promocion {
	var out []model.Promocion
	for _, p := range r.promos {
		if p.ProductoID == productoID && p.Activo {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ repository.PromocionRepository = (*stubPromocionRepo)(nil)

// ── Admins ───────────────────────────────────────────────────────────────────

type stubAdminRepo struct {
	admins map[string]*model.Administrador
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*model.Administrador)}
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*model.Administrador, error) {
	a, ok := r.admins[strings.ToLower(username)]
	if !ok || !a.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id uint) (*model.Administrador, error) {
	for _, a := range r.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAdminRepo) Guardar(_ context.Context, a *model.Administrador) error {
	if a.ID == 0 {
		a.ID = uint(len(r.admins) + 1)
	}
	r.admins[strings.ToLower(a.Username)] = a
	return nil
}

func (r *stubAdminRepo) List(_ context.Context) ([]model.Administrador, error) {
	out := make([]model.Administrador, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out, nil
}

var _ repository.AdministradorRepository = (*stubAdminRepo)(nil)

// ── Scans ────────────────────────────────────────────────────────────────────

type stubEscaneoRepo struct {
	mu        sync.Mutex
	registros []string
	falla     error
}

func (r *stubEscaneoRepo) Registrar(_ context.Context, codigo string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.falla != nil {
		return r.falla
	}
	r.registros = append(r.registros, codigo)
	return nil
}

func (r *stubEscaneoRepo) PorDia(_ context.Context, hasta time.Time, dias int) ([]repository.ConteoDia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.falla != nil {
		return nil, r.falla
	}
	out := make([]repository.ConteoDia, dias)
	for i := 0; i < dias; i++ {
		d := hasta.AddDate(0, 0, i-dias+1)
		out[i] = repository.ConteoDia{Fecha: d.Format("2006-01-02")}
	}
	out[dias-1].Cantidad = int64(len(r.registros))
	return out, nil
}

func (r *stubEscaneoRepo) MasEscaneados(_ context.Context, n int64) ([]repository.ConteoCodigo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.falla != nil {
		return nil, r.falla
	}
	cuenta := map[string]int64{}
	for _, c := range r.registros {
		cuenta[c]++
	}
	out := make([]repository.ConteoCodigo, 0, len(cuenta))
	for c, k := range cuenta {
		out = append(out, repository.ConteoCodigo{Codigo: c, Cantidad: k})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cantidad > out[j].Cantidad })
	if int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

var _ repository.EscaneoRepository = (*stubEscaneoRepo)(nil)

var errRedisCaido = errors.New("redis: connection refused")

// ── Helpers ──────────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

var baires = mustLoc("America/Argentina/Buenos_Aires")

func mustLoc(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func newTestCfg() *config.Config {
	return &config.Config{
		BaseURL:            "https://vinos.example.com",
		JWTSecret:          testSecret,
		JWTExpirationHours: 8,
		Loc:                baires,
	}
}

// enBA builds a wall-clock instant in Buenos Aires.
func enBA(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, baires)
}
