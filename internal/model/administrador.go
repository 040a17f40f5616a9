package model

import "time"

// Administrador is a back-office user allowed to manage the catalog.
type Administrador struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Nombre       string `gorm:"column:name;not null"`
	PasswordHash string `gorm:"not null"`
	Activo       bool   `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Administrador) TableName() string { return "admins" }
