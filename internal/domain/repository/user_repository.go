package repository

import (
	"context"

	"github.com/tu-usuario/minegocio/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// PromoteRole cambia el rol solo si el rol actual es fromRole
	// (update condicional). Devuelve true si la fila cambió. Es la única
	// escritura de rol del núcleo: la usa el approve dentro de su transacción,
	// y su condición deja intactos content_admin y main_admin.
	PromoteRole(ctx context.Context, id, fromRole, toRole string) (bool, error)
}
