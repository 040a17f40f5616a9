package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/apierror"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CatalogoPublicoHandler serves the unauthenticated QR lookup and search.
type CatalogoPublicoHandler struct{ svc service.ProductoService }

func NewCatalogoPublicoHandler(svc service.ProductoService) *CatalogoPublicoHandler {
	return &CatalogoPublicoHandler{svc: svc}
}

// PorCodigo godoc
// @Summary Resuelve el codigo de un QR (sin autenticacion)
// @Tags publico
// @Produce json
// @Param codigo path string true "Codigo publico"
// @Success 200 {object} dto.ProductoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/public/productos/{codigo} [get]
func (h *CatalogoPublicoHandler) PorCodigo(c *gin.Context) {
	resp, err := h.svc.ObtenerPorCodigo(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary Busca productos activos (sin autenticacion)
// @Tags publico
// @Produce json
// @Param search query string false "Texto a buscar"
// @Param field query string false "name | drink_type | varietal | origin | winery_distillery | public_code"
// @Param min_price query number false "Precio minimo"
// @Param max_price query number false "Precio maximo"
// @Param vintage_year query int false "Cosecha"
// @Param drink_type query string false "Tipo de bebida"
// @Param limit query int false "Tamano de pagina (maximo 100)"
// @Param offset query int false "Desplazamiento"
// @Success 200 {object} dto.BusquedaResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/public/productos [get]
func (h *CatalogoPublicoHandler) Buscar(c *gin.Context) {
	req, fields := parsearBusqueda(c)
	if len(fields) > 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// parsearBusqueda reads the search query string. Malformed numbers are
// reported per field instead of being ignored.
func parsearBusqueda(c *gin.Context) (dto.BusquedaRequest, map[string]string) {
	req := dto.BusquedaRequest{
		Texto: c.Query("search"),
		Campo: c.Query("field"),
	}
	fields := make(map[string]string)

	decimalQ := func(clave string) *decimal.Decimal {
		v := strings.TrimSpace(c.Query(clave))
		if v == "" {
			return nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			fields[clave] = "numero invalido"
			return nil
		}
		return &d
	}
	enteroQ := func(clave string) *int {
		v := strings.TrimSpace(c.Query(clave))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			fields[clave] = "entero invalido"
			return nil
		}
		return &n
	}

	req.PrecioMin = decimalQ("min_price")
	req.PrecioMax = decimalQ("max_price")
	req.Anio = enteroQ("vintage_year")
	if n := enteroQ("limit"); n != nil {
		req.Limit = *n
	}
	if n := enteroQ("offset"); n != nil {
		req.Offset = *n
	}
	if t := strings.TrimSpace(c.Query("drink_type")); t != "" {
		req.TipoBebida = &t
	}
	return req, fields
}
