package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
)

// HeaderBranchID header que indica la sucursal activa del request.
const HeaderBranchID = "X-Sucursal-Id"

// LocalActiveBranchID local key con la sucursal activa resuelta.
const LocalActiveBranchID = "active_branch_id"

// BranchMiddleware resuelve la sucursal activa del request: el header
// X-Sucursal-Id si viene, o la sucursal casa del token. Los usuarios que no
// son admin solo pueden operar sobre su propia sucursal.
func BranchMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		home := GetHomeBranchID(c)
		active := c.Get(HeaderBranchID)
		if active == "" {
			active = home
		}
		if active == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_BRANCH", Message: "header " + HeaderBranchID + " requerido"})
		}
		if GetRole(c) != entity.RoleAdmin && active != home {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puede operar sobre otra sucursal"})
		}
		c.Locals(LocalActiveBranchID, active)
		return c.Next()
	}
}

// GetActiveBranch devuelve la sucursal activa del request (después del middleware).
func GetActiveBranch(c *fiber.Ctx) string {
	v := c.Locals(LocalActiveBranchID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
