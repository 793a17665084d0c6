package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrSlugConflict: el slug dejó de estar disponible entre la verificación
	// informativa y el alta atómica. El cliente debe re-verificar y reenviar.
	ErrSlugConflict = errors.New("el slug ya está en uso")

	// ErrInvalidTransition: la operación de ciclo de vida se invocó desde un
	// estado que no la permite (p. ej. aprobar un listado ya decidido).
	// Nunca se reintenta: cada transición representa una decisión humana única.
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	// ErrEditAlreadyPending: solo puede haber una edición en revisión por
	// listado; no se hace merge de ediciones concurrentes.
	ErrEditAlreadyPending = errors.New("ya hay una edición pendiente de revisión")
)
