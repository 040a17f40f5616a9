package handler

import (
	"net/http"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type MetricasHandler struct{ svc service.MetricasService }

func NewMetricasHandler(svc service.MetricasService) *MetricasHandler {
	return &MetricasHandler{svc: svc}
}

// Obtener godoc
// @Summary Resumen del catalogo y escaneos de QR
// @Tags metricas
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.MetricasResponse
// @Router /v1/admin/metricas [get]
func (h *MetricasHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
