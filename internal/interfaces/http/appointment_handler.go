package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ksalazar-dev/salon-api/internal/application/appointment"
	"github.com/ksalazar-dev/salon-api/internal/application/dto"
)

// AppointmentHandler maneja el ciclo de vida de citas, incluido el cierre atómico.
type AppointmentHandler struct {
	uc      *appointment.UseCase
	closeUC *appointment.CloseAppointmentUseCase
	receipt *appointment.ReceiptUseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(
	uc *appointment.UseCase,
	closeUC *appointment.CloseAppointmentUseCase,
	receipt *appointment.ReceiptUseCase,
) *AppointmentHandler {
	return &AppointmentHandler{uc: uc, closeUC: closeUC, receipt: receipt}
}

// Create godoc
// @Summary      Agendar cita
// @Tags         citas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAppointmentRequest  true  "customer_id, service_ids, scheduled_at, deposit opcional"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/citas [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.uc.Book(c.Context(), GetActiveBranch(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// List godoc
// @Summary      Listar citas de la sucursal activa
// @Tags         citas
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "RFC3339: inicio del rango de agenda"
// @Param        to      query  string  false  "RFC3339: fin del rango de agenda"
// @Param        limit   query  int     false  "máx 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.AppointmentListResponse
// @Router       /api/citas [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
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

	res, err := h.uc.List(c.Context(), GetActiveBranch(c), from, to, page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}

// GetByID godoc
// @Summary      Detalle de una cita
// @Tags         citas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/citas/{id} [get]
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.uc.GetByID(c.Context(), c.Params("id"), GetActiveBranch(c))
	if err != nil {
		return errorJSON(c, err)
	}
	if res == nil {
		return notFoundJSON(c)
	}
	return c.JSON(res)
}

// Confirm godoc
// @Summary      Confirmar cita asignando empleado
// @Tags         citas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.ConfirmAppointmentRequest  true  "employee_id"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/citas/{id}/confirmar [put]
func (h *AppointmentHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.uc.Confirm(c.Context(), c.Params("id"), GetActiveBranch(c), in.EmployeeID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}

// Cancel godoc
// @Summary      Cancelar cita
// @Tags         citas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.CancelAppointmentRequest  true  "reason obligatorio"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/citas/{id}/cancelar [put]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBodyJSON(c)
	}
	res, err := h.uc.Cancel(c.Context(), c.Params("id"), GetActiveBranch(c), in.Reason)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}

// Close godoc
// @Summary      Cerrar cita (descuenta existencias, acredita puntos y comisión)
// @Description  Operación atómica: o se aplican todos los efectos del cierre o ninguno.
// @Tags         citas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  dto.CloseAppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/citas/{id}/cerrar [put]
func (h *AppointmentHandler) Close(c *fiber.Ctx) error {
	res, err := h.closeUC.Close(c.Context(), c.Params("id"), GetActiveBranch(c), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(res)
}

// Receipt godoc
// @Summary      Recibo PDF de una cita cerrada
// @Tags         citas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/citas/{id}/recibo [get]
func (h *AppointmentHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receipt.Generate(c.Context(), c.Params("id"), GetActiveBranch(c))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recibo-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
