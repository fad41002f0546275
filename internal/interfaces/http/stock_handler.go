package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/application/inventory"
)

// StockHandler maneja existencias de la sucursal activa.
type StockHandler struct {
	uc *inventory.AdjustStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.AdjustStockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar existencias de la sucursal activa
// @Tags         existencias
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/existencias [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBodyJSON(c)
	}
	page.DefaultPage()
	res, err := h.uc.List(c.Context(), GetActiveBranch(c), page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}

// Adjust godoc
// @Summary      Ajustar existencias (reposición o descuento manual)
// @Description  Delta positivo repone, negativo descuenta. La cantidad nunca queda bajo cero.
// @Tags         existencias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "material_id, delta, minimum opcional, reason"
// @Success      200   {object}  dto.StockResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/existencias/ajustes [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.uc.Adjust(c.Context(), GetActiveBranch(c), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}

// Alerts godoc
// @Summary      Materiales en o bajo su umbral de reposición
// @Tags         existencias
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockResponse
// @Router       /api/existencias/alertas [get]
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	items, err := h.uc.ListBelowMinimum(c.Context(), GetActiveBranch(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}
