package lifecycle

import (
	"context"

	"github.com/tu-usuario/minegocio/internal/domain/entity"
	"github.com/tu-usuario/minegocio/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el cambio de estado del listado
// y la promoción de rol del dueño se aplican juntos o no se aplican.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		listings repository.ListingRepository,
		users repository.UserRepository,
	) error) error
}

// Notifier son los puntos de enganche para avisar al dueño de una decisión de
// moderación. El transporte (email/SMS) es un colaborador externo; este
// núcleo solo emite el evento después de confirmar la transacción. Las
// implementaciones no deben bloquear ni devolver error: una notificación
// perdida no invalida una decisión ya tomada.
type Notifier interface {
	ListingApproved(ctx context.Context, l *entity.Listing)
	ListingRejected(ctx context.Context, l *entity.Listing, reason string)
	EditApproved(ctx context.Context, l *entity.Listing)
	EditRejected(ctx context.Context, l *entity.Listing, reason string)
}
