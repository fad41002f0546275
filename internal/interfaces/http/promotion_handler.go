package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/application/usecase"
)

// PromotionHandler maneja promociones y cálculo de descuentos.
type PromotionHandler struct {
	uc *usecase.PromotionUseCase
}

// NewPromotionHandler construye el handler.
func NewPromotionHandler(uc *usecase.PromotionUseCase) *PromotionHandler {
	return &PromotionHandler{uc: uc}
}

// Create crea una promoción (POST /api/promociones).
func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.uc.Create(c.Context(), GetActiveBranch(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// List lista promociones vigentes y futuras de la sucursal (GET /api/promociones).
func (h *PromotionHandler) List(c *fiber.Ctx) error {
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

// GetByID obtiene una promoción (GET /api/promociones/:id).
func (h *PromotionHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.uc.GetByID(c.Context(), c.Params("id"), GetActiveBranch(c))
	if err != nil {
		return errorJSON(c, err)
	}
	if res == nil {
		return notFoundJSON(c)
	}
	return c.JSON(res)
}

// Update actualiza una promoción (PUT /api/promociones/:id).
func (h *PromotionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.uc.Update(c.Context(), c.Params("id"), GetActiveBranch(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	if res == nil {
		return notFoundJSON(c)
	}
	return c.JSON(res)
}

// Delete elimina una promoción (DELETE /api/promociones/:id).
func (h *PromotionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetActiveBranch(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Apply godoc
// @Summary      Calcular descuento de una promoción sobre un total
// @Tags         promociones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la promoción"
// @Param        body  body  dto.ApplyPromotionRequest  true  "total a descontar"
// @Success      200   {object}  dto.ApplyPromotionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/promociones/{id}/aplicar [post]
func (h *PromotionHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyPromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.uc.Apply(c.Context(), c.Params("id"), GetActiveBranch(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}
