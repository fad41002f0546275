package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrBranchMismatch        = errors.New("la cita pertenece a otra sucursal")
	ErrInsufficientStock     = errors.New("existencias insuficientes")
	ErrAppointmentNotPending = errors.New("la cita no está pendiente")
	ErrInsufficientPoints    = errors.New("puntos insuficientes")
	ErrPromotionInactive     = errors.New("la promoción no está vigente")
)
