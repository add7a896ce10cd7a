package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/application/sales"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	uc      *sales.SaleUseCase
	receipt *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receipt: receipt}
}

// Create POST /ventas (modo relajado: también anónimo)
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sale, err := h.uc.Create(c.Context(), CallerFromCtx(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List GET /ventas?cliente=123&fecha_inicio=2026-01-01&fecha_fin=2026-01-31
// Más recientes primero; los filtros de fecha son límites inclusivos.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	filter := repository.SaleFilter{
		ClienteCedula: c.Query("cliente"),
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	if raw := c.Query("fecha_inicio"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "fecha_inicio debe ser AAAA-MM-DD"})
		}
		filter.FechaInicio = &t
	}
	if raw := c.Query("fecha_fin"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "fecha_fin debe ser AAAA-MM-DD"})
		}
		// Límite inclusivo: cubrir el día completo.
		fin := t.Add(24*time.Hour - time.Nanosecond)
		filter.FechaFin = &fin
	}

	list, err := h.uc.List(CallerFromCtx(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /ventas/:id (items enriquecidos con producto resuelto o nulo)
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFound(c)
	}
	sale, err := h.uc.GetByID(CallerFromCtx(c), id)
	if err != nil {
		return writeError(c, err)
	}
	if sale == nil {
		return notFound(c)
	}
	return c.JSON(sale)
}

// Update PUT /ventas/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFound(c)
	}
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sale, err := h.uc.Update(CallerFromCtx(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	if sale == nil {
		return notFound(c)
	}
	return c.JSON(sale)
}

// Delete DELETE /ventas/:id (solo admin; elimina también los items)
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFound(c)
	}
	if err := h.uc.Delete(c.Context(), CallerFromCtx(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF GET /ventas/:id/pdf
func (h *SaleHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFound(c)
	}
	pdfBytes, filename, err := h.receipt.DownloadReceiptPDF(c.Context(), CallerFromCtx(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
