package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/application/usecase"
)

// AuditHandler consulta de solo lectura del log de auditoría (solo admin).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar auditoría de la sucursal activa
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        entity  query  string  false  "filtrar por entidad: cita, existencia, puntos"
// @Param        limit   query  int     false  "máx 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.AuditListResponse
// @Router       /api/auditoria [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBodyJSON(c)
	}
	page.DefaultPage()
	res, err := h.uc.List(c.Context(), GetActiveBranch(c), c.Query("entity"), page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}
