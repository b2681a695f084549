package services

import "errors"

// Common service errors
var (
	ErrNotFound     = errors.New("registro no encontrado")
	ErrInvalidState = errors.New("transición de estado inválida")
	ErrLoanClosed   = errors.New("el préstamo ya está liquidado")
)
