package repository

import (
	"context"
	"errors"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductoInactivo is returned by CrearExclusiva when the product was
// deactivated before its row could be locked.
var ErrProductoInactivo = errors.New("producto inactivo")

// camposEditablesPromocion are the columns Update writes. is_active is left
// out so a concurrent deactivation is never undone.
var camposEditablesPromocion = []string{
	"promotion_type", "parameter_value", "visible_text", "start_at", "end_at", "updated_at",
}

// PromocionRepository defines the data access contract for promotions.
type PromocionRepository interface {
	// CrearExclusiva locks the product row, hands its active promotions to
	// validar and inserts p only if validar returns nil. Concurrent creations
	// for the same product are serialized by the lock. Errors from validar
	// are returned unchanged; an inactive product yields ErrProductoInactivo.
	CrearExclusiva(ctx context.Context, p *model.Promocion, validar func(activas []model.Promocion) error) error
	FindByID(ctx context.Context, id uint) (*model.Promocion, error)
	ListActivasPorProducto(ctx context.Context, productoID uint) ([]model.Promocion, error)
	// ListVigentesPorProductos returns the promotions in effect at ahora for
	// the given products, newest start first.
	ListVigentesPorProductos(ctx context.Context, productoIDs []uint, ahora time.Time) ([]model.Promocion, error)
	List(ctx context.Context, productoID *uint) ([]model.Promocion, error)
	Update(ctx context.Context, p *model.Promocion) error
	Delete(ctx context.Context, id uint) (bool, error)
	Desactivar(ctx context.Context, id uint) (bool, error)
	ContarVigentes(ctx context.Context, ahora time.Time) (int64, error)
}

type promocionRepo struct{ db *gorm.DB }

func NewPromocionRepository(db *gorm.DB) PromocionRepository { return &promocionRepo{db: db} }

func (r *promocionRepo) CrearExclusiva(ctx context.Context, p *model.Promocion, validar func([]model.Promocion) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prod model.Producto
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "is_active").
			Take(&prod, p.ProductoID).Error
		if err != nil {
			return err
		}
		if !prod.Activo {
			return ErrProductoInactivo
		}

		var activas []model.Promocion
		err = tx.Where("product_id = ? AND is_active = ?", p.ProductoID, true).
			Order("start_at ASC").Order("id ASC").
			Find(&activas).Error
		if err != nil {
			return err
		}
		if err := validar(activas); err != nil {
			return err
		}
		return tx.Create(p).Error
	})
}

func (r *promocionRepo) FindByID(ctx context.Context, id uint) (*model.Promocion, error) {
	var p model.Promocion
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *promocionRepo) ListActivasPorProducto(ctx context.Context, productoID uint) ([]model.Promocion, error) {
	var promos []model.Promocion
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productoID, true).
		Order("start_at ASC").Order("id ASC").
		Find(&promos).Error
	return promos, err
}

func vigentesEn(ahora time.Time) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("is_active = ? AND start_at <= ? AND (end_at IS NULL OR end_at >= ?)", true, ahora, ahora)
	}
}

func (r *promocionRepo) ListVigentesPorProductos(ctx context.Context, productoIDs []uint, ahora time.Time) ([]model.Promocion, error) {
	if len(productoIDs) == 0 {
		return nil, nil
	}
	var promos []model.Promocion
	err := r.db.WithContext(ctx).
		Scopes(vigentesEn(ahora)).
		Where("product_id IN ?", productoIDs).
		Order("start_at DESC").Order("id DESC").
		Find(&promos).Error
	return promos, err
}

func (r *promocionRepo) List(ctx context.Context, productoID *uint) ([]model.Promocion, error) {
	q := r.db.WithContext(ctx)
	if productoID != nil {
		q = q.Where("product_id = ?", *productoID)
	}
	var promos []model.Promocion
	err := q.Order("created_at DESC").Order("id DESC").Find(&promos).Error
	return promos, err
}

func (r *promocionRepo) Update(ctx context.Context, p *model.Promocion) error {
	return actualizarPromocion(r.db.WithContext(ctx), p).Error
}

func actualizarPromocion(db *gorm.DB, p *model.Promocion) *gorm.DB {
	return db.Model(p).Select(camposEditablesPromocion).Updates(p)
}

func (r *promocionRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Promocion{}, id)
	return res.RowsAffected > 0, res.Error
}

// Desactivar reports whether the promotion exists. Deactivating an already
// inactive promotion is not an error.
func (r *promocionRepo) Desactivar(ctx context.Context, id uint) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.Promocion{}).Where("id = ?", id)
	if err := q.Count(&n).Error; err != nil || n == 0 {
		return false, err
	}
	err := r.db.WithContext(ctx).Model(&model.Promocion{}).Where("id = ?", id).Update("is_active", false).Error
	return err == nil, err
}

func (r *promocionRepo) ContarVigentes(ctx context.Context, ahora time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Promocion{}).Scopes(vigentesEn(ahora)).Count(&n).Error
	return n, err
}
