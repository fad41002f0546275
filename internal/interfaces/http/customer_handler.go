package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/application/loyalty"
	"github.com/ksalazar-dev/salon-api/internal/application/usecase"
)

// CustomerHandler maneja clientes y su programa de puntos.
type CustomerHandler struct {
	uc     *usecase.CustomerUseCase
	points *loyalty.RedeemUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, points *loyalty.RedeemUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, points: points}
}

// Create crea un cliente en la sucursal activa (POST /api/clientes).
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.uc.Create(c.Context(), GetActiveBranch(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// List lista clientes de la sucursal activa (GET /api/clientes).
func (h *CustomerHandler) List(c *fiber.Ctx) error {
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

// GetByID obtiene un cliente (GET /api/clientes/:id).
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.uc.GetByID(c.Context(), c.Params("id"), GetActiveBranch(c))
	if err != nil {
		return errorJSON(c, err)
	}
	if res == nil {
		return notFoundJSON(c)
	}
	return c.JSON(res)
}

// Update actualiza un cliente (PUT /api/clientes/:id).
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
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

// Delete elimina un cliente (DELETE /api/clientes/:id).
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetActiveBranch(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Points godoc
// @Summary      Saldo e historial de puntos del cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del cliente"
// @Param        limit   query  int     false  "máx 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.PointsStatementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/puntos [get]
func (h *CustomerHandler) Points(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBodyJSON(c)
	}
	page.DefaultPage()
	res, err := h.points.Statement(c.Context(), c.Params("id"), GetActiveBranch(c), page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}

// Redeem godoc
// @Summary      Canjear puntos del cliente
// @Description  Operación transaccional: el saldo nunca queda negativo.
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.RedeemPointsRequest  true  "amount y reason opcional"
// @Success      200   {object}  dto.RedeemPointsResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/puntos/canje [post]
func (h *CustomerHandler) Redeem(c *fiber.Ctx) error {
	var in dto.RedeemPointsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.points.Redeem(c.Context(), c.Params("id"), GetActiveBranch(c), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}
