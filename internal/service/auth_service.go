package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/apierror"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/clock"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/config"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CostoBcrypt is the cost used for every stored admin password.
const CostoBcrypt = 12

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Perfil(ctx context.Context, adminID uint) (*dto.AdminResponse, error)
}

type authService struct {
	repo  repository.AdministradorRepository
	reloj clock.Clock
	cfg   *config.Config
}

func NewAuthService(repo repository.AdministradorRepository, reloj clock.Clock, cfg *config.Config) AuthService {
	return &authService{repo: repo, reloj: reloj, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("Credenciales invalidas")
		}
		return nil, fmt.Errorf("buscar administrador: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Unauthorized("Credenciales invalidas")
	}

	duracion := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	expira := s.reloj.Now().Add(duracion)
	token, err := s.generateToken(admin, expira)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiraEn:  expira,
		ExpiresIn: int(duracion.Seconds()),
		Admin:     adminAResponse(admin),
	}, nil
}

func (s *authService) Perfil(ctx context.Context, adminID uint) (*dto.AdminResponse, error) {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("Sesion invalida")
		}
		return nil, fmt.Errorf("buscar administrador: %w", err)
	}
	if !admin.Activo {
		return nil, apierror.Unauthorized("Sesion invalida")
	}
	resp := adminAResponse(admin)
	return &resp, nil
}

func (s *authService) generateToken(admin *model.Administrador, expira time.Time) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"exp":      expira.Unix(),
		"iat":      s.reloj.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword is shared by the admin CLI and tests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), CostoBcrypt)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
