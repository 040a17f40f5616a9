package repository

import (
	"context"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdministradorRepository interface {
	// FindByUsername only returns active admins.
	FindByUsername(ctx context.Context, username string) (*model.Administrador, error)
	FindByID(ctx context.Context, id uint) (*model.Administrador, error)
	// Guardar inserts a, or overwrites name, password and status of the admin
	// with the same username.
	Guardar(ctx context.Context, a *model.Administrador) error
	List(ctx context.Context) ([]model.Administrador, error)
}

type administradorRepo struct{ db *gorm.DB }

func NewAdministradorRepository(db *gorm.DB) AdministradorRepository {
	return &administradorRepo{db: db}
}

func (r *administradorRepo) FindByUsername(ctx context.Context, username string) (*model.Administrador, error) {
	var a model.Administrador
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?) AND is_active = ?", username, true).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *administradorRepo) FindByID(ctx context.Context, id uint) (*model.Administrador, error) {
	var a model.Administrador
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *administradorRepo) Guardar(ctx context.Context, a *model.Administrador) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "is_active", "updated_at"}),
	}).Create(a).Error
}

func (r *administradorRepo) List(ctx context.Context) ([]model.Administrador, error) {
	var admins []model.Administrador
	err := r.db.WithContext(ctx).Order("username ASC").Find(&admins).Error
	return admins, err
}
