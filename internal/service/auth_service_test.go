package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/apierror"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/clock"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedAdmin(t *testing.T, repo *stubAdminRepo, username, password string) *model.Administrador {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	a := &model.Administrador{Username: username, Nombre: "Admin Test", PasswordHash: string(hash), Activo: true}
	require.NoError(t, repo.Guardar(context.Background(), a))
	return a
}

func TestLogin_Success(t *testing.T) {
	repo := newStubAdminRepo()
	admin := seedAdmin(t, repo, "admin", "password123")
	reloj := clock.NewFijo(time.Now())
	svc := service.NewAuthService(repo, reloj, newTestCfg())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, reloj.Now().Add(8*time.Hour), resp.ExpiraEn)
	assert.Equal(t, "admin", resp.Admin.Username)

	tok, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(admin.ID), claims["admin_id"])
	assert.Equal(t, "admin", claims["username"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmin(t, repo, "admin", "correctpass")
	svc := service.NewAuthService(repo, clock.Sistema(), newTestCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "wrongpass"})
	assert.True(t, apierror.Is(err, apierror.KindUnauthorized))
}

func TestLogin_UserNotFound_SameMessage(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmin(t, repo, "admin", "correctpass")
	svc := service.NewAuthService(repo, clock.Sistema(), newTestCfg())

	_, errNoUser := svc.Login(context.Background(), dto.LoginRequest{Username: "noexiste", Password: "anypass123"})
	_, errBadPass := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "anypass123"})

	require.True(t, apierror.Is(errNoUser, apierror.KindUnauthorized))
	assert.Equal(t, errBadPass.Error(), errNoUser.Error())
}

func TestLogin_InactiveAdmin_Rejected(t *testing.T) {
	repo := newStubAdminRepo()
	a := seedAdmin(t, repo, "admin", "password123")
	a.Activo = false
	svc := service.NewAuthService(repo, clock.Sistema(), newTestCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "password123"})
	assert.True(t, apierror.Is(err, apierror.KindUnauthorized))
}

func TestPerfil(t *testing.T) {
	repo := newStubAdminRepo()
	a := seedAdmin(t, repo, "admin", "password123")
	svc := service.NewAuthService(repo, clock.Sistema(), newTestCfg())

	resp, err := svc.Perfil(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Admin Test", resp.Nombre)

	_, err = svc.Perfil(context.Background(), 999)
	assert.True(t, apierror.Is(err, apierror.KindUnauthorized))
}

func TestHashPassword_Verifies(t *testing.T) {
	hash, err := service.HashPassword("s3creto")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3creto")))
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, service.CostoBcrypt, cost)
}
