package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/application/usecase"
)

// EmployeeHandler maneja empleados y su estado de cuenta de comisiones.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create crea un empleado en la sucursal activa (POST /api/empleados).
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.uc.Create(c.Context(), GetActiveBranch(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// List lista empleados de la sucursal activa (GET /api/empleados).
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
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

// GetByID obtiene un empleado (GET /api/empleados/:id).
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.uc.GetByID(c.Context(), c.Params("id"), GetActiveBranch(c))
	if err != nil {
		return errorJSON(c, err)
	}
	if res == nil {
		return notFoundJSON(c)
	}
	return c.JSON(res)
}

// Update actualiza un empleado (PUT /api/empleados/:id).
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
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

// Delete elimina un empleado (DELETE /api/empleados/:id).
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetActiveBranch(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Commissions godoc
// @Summary      Comisiones de un empleado
// @Tags         empleados
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del empleado"
// @Param        from    query  string  false  "RFC3339: inicio del período"
// @Param        to      query  string  false  "RFC3339: fin del período"
// @Param        limit   query  int     false  "máx 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.CommissionStatementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empleados/{id}/comisiones [get]
func (h *EmployeeHandler) Commissions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBodyJSON(c)
	}
	page.DefaultPage()

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		to = &t
	}

	res, err := h.uc.Commissions(c.Context(), c.Params("id"), GetActiveBranch(c), from, to, page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}
