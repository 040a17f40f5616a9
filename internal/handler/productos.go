package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/dto"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/infra"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductosHandler serves the admin catalog endpoints.
type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear godoc
// @Summary Crea un producto
// @Tags productos
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param body body dto.CrearProductoRequest true "Producto"
// @Success 201 {object} dto.ProductoResponse
// @Failure 409 {object} apierror.ConflictError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/admin/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), adminID(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista productos para el panel (activos, inactivos o todos)
// @Tags productos
// @Produce json
// @Security CookieAuth
// @Param estado query string false "activos | inactivos | todos"
// @Param q query string false "Texto sobre nombre o codigo"
// @Param limit query int false "Tamano de pagina"
// @Param offset query int false "Desplazamiento"
// @Success 200 {object} dto.ProductoListResponse
// @Router /v1/admin/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoAdminFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarAdmin(c.Request.Context(), filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID godoc
// @Summary Obtiene un producto (incluye inactivos)
// @Tags productos
// @Produce json
// @Security CookieAuth
// @Param id path int true "ID de producto"
// @Success 200 {object} dto.ProductoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/admin/productos/{id} [get]
func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
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
// @Summary Actualiza campos de un producto
// @Tags productos
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "ID de producto"
// @Param body body dto.ActualizarProductoRequest true "Campos a modificar"
// @Success 200 {object} dto.ProductoResponse
// @Failure 409 {object} apierror.ConflictError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/admin/productos/{id} [put]
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), adminID(c), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Elimina un producto y sus promociones
// @Tags productos
// @Security CookieAuth
// @Param id path int true "ID de producto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/admin/productos/{id} [delete]
func (h *ProductosHandler) Eliminar(c *gin.Context) {
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

func (h *ProductosHandler) Desactivar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), adminID(c), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductosHandler) Reactivar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), adminID(c), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Exportar godoc
// @Summary Descarga el catalogo completo como planilla XLSX
// @Tags productos
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security CookieAuth
// @Success 200 {file} file
// @Router /v1/admin/productos/exportar [get]
func (h *ProductosHandler) Exportar(c *gin.Context) {
	productos, err := h.svc.Exportar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}

	filas := make([]infra.FilaCatalogo, len(productos))
	for i, p := range productos {
		filas[i] = filaCatalogo(p)
	}
	var buf bytes.Buffer
	if err := infra.EscribirCatalogoXLSX(&buf, filas); err != nil {
		responderError(c, fmt.Errorf("exportar xlsx: %w", err))
		return
	}

	nombre := fmt.Sprintf("catalogo-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, mimeXLSX, buf.Bytes())
}

// Etiqueta godoc
// @Summary Genera la etiqueta PDF con el QR del producto
// @Tags productos
// @Produce application/pdf
// @Security CookieAuth
// @Param id path int true "ID de producto"
// @Success 200 {file} file
// @Failure 404 {object} apierror.APIError
// @Router /v1/admin/productos/{id}/etiqueta [get]
func (h *ProductosHandler) Etiqueta(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := infra.GenerarEtiquetaPDF(&buf, etiquetaDe(p)); err != nil {
		responderError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="etiqueta-`+strconv.FormatUint(uint64(p.ID), 10)+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func etiquetaDe(p *dto.ProductoResponse) infra.Etiqueta {
	var detalle []string
	if p.Varietal != nil {
		detalle = append(detalle, *p.Varietal)
	}
	if p.Anio != nil {
		detalle = append(detalle, strconv.Itoa(*p.Anio))
	}
	e := infra.Etiqueta{
		Codigo:  p.CodigoPublico,
		Nombre:  p.Nombre,
		Bodega:  p.Bodega,
		Detalle: strings.Join(detalle, " "),
		Precio:  p.PrecioFinal.StringFixed(2),
		Link:    p.QRLink,
	}
	if p.Promocion != nil {
		e.Promocion = p.Promocion.Texto
		if p.PrecioFinal.LessThan(p.PrecioOriginal) {
			e.PrecioAntes = p.PrecioOriginal.StringFixed(2)
		}
	}
	return e
}

func filaCatalogo(p dto.ProductoResponse) infra.FilaCatalogo {
	f := infra.FilaCatalogo{
		Codigo:      p.CodigoPublico,
		Nombre:      p.Nombre,
		Tipo:        p.TipoBebida,
		Bodega:      p.Bodega,
		Anio:        p.Anio,
		PrecioBase:  p.PrecioBase.InexactFloat64(),
		PrecioFinal: p.PrecioFinal.InexactFloat64(),
		Activo:      p.Activo,
		Stock:       p.StockVisible,
		Link:        p.QRLink,
		Actualizado: p.UpdatedAt,
	}
	if p.Varietal != nil {
		f.Varietal = *p.Varietal
	}
	if p.Origen != nil {
		f.Origen = *p.Origen
	}
	if p.Promocion != nil {
		f.Promocion = p.Promocion.Texto
	}
	return f
}
