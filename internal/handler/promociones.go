package handler

import (
	"net/http"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type PromocionesHandler struct{ svc service.PromocionService }

func NewPromocionesHandler(svc service.PromocionService) *PromocionesHandler {
	return &PromocionesHandler{svc: svc}
}

// Crear godoc
// @Summary Crea una promocion
// @Description Rechaza con 409 si la ventana se superpone con otra promocion activa del producto.
// @Tags promociones
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param body body dto.CrearPromocionRequest true "Promocion"
// @Success 201 {object} dto.PromocionResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.ConflictError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/admin/promociones [post]
func (h *PromocionesHandler) Crear(c *gin.Context) {
	var req dto.CrearPromocionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista promociones, opcionalmente de un producto
// @Tags promociones
// @Produce json
// @Security CookieAuth
// @Param product_id query int false "ID de producto"
// @Success 200 {array} dto.PromocionResponse
// @Router /v1/admin/promociones [get]
func (h *PromocionesHandler) Listar(c *gin.Context) {
	var filter dto.PromocionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromocionesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Reemplaza los campos editables de una promocion
// @Description No verifica superposicion; si la hay la informa en "advertencias".
// @Tags promociones
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "ID de promocion"
// @Param body body dto.ActualizarPromocionRequest true "Promocion"
// @Success 200 {object} dto.PromocionActualizadaResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/admin/promociones/{id} [put]
func (h *PromocionesHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarPromocionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromocionesHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PromocionesHandler) Desactivar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
