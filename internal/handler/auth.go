package handler

import (
	"net/http"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/config"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler manages the admin session. The JWT is only ever sent in an
// HttpOnly cookie.
type AuthHandler struct {
	svc service.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// Login godoc
// @Summary Login de administrador
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	h.setSession(c, resp.Token, resp.ExpiresIn)
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Cierra la sesion
// @Tags auth
// @Success 204
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSession(c, "", -1)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Administrador de la sesion actual
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.AdminResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Perfil(c.Request.Context(), adminID(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookieName, token, maxAge, "/", "", h.cfg.CookieSecure, true)
}
