package entity

import "time"

// Roles válidos para User.
//
// normal ↔ content_admin no se asigna a mano: content_admin se otorga como
// efecto de la primera aprobación de un listado del usuario. main_admin se
// asigna fuera de banda (seed/consola) y este núcleo nunca lo modifica.
const (
	RoleNormal       = "normal"
	RoleContentAdmin = "content_admin"
	RoleMainAdmin    = "main_admin"
)

// User representa una cuenta de la plataforma (dueño de cero o más listados).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // normal, content_admin, main_admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
