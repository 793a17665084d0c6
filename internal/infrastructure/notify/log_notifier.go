// Package notify implementa los puntos de enganche de notificación del ciclo
// de vida. El envío real (email/SMS) es un colaborador externo; este adaptador
// solo deja constancia estructurada de cada decisión emitida.
package notify

import (
	"context"

	"github.com/tu-usuario/minegocio/internal/application/lifecycle"
	"github.com/tu-usuario/minegocio/internal/domain/entity"
	"github.com/tu-usuario/minegocio/pkg/logger"
)

var _ lifecycle.Notifier = (*LogNotifier)(nil)

// LogNotifier registra los eventos de decisión en el log estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) ListingApproved(_ context.Context, l *entity.Listing) {
	n.log.Info().Str("listing_id", l.ID).Str("owner_id", l.OwnerID).Str("slug", l.Slug).
		Msg("listado aprobado")
}

func (n *LogNotifier) ListingRejected(_ context.Context, l *entity.Listing, reason string) {
	n.log.Info().Str("listing_id", l.ID).Str("owner_id", l.OwnerID).Str("reason", reason).
		Msg("listado rechazado")
}

func (n *LogNotifier) EditApproved(_ context.Context, l *entity.Listing) {
	n.log.Info().Str("listing_id", l.ID).Str("owner_id", l.OwnerID).
		Msg("edición aprobada")
}

func (n *LogNotifier) EditRejected(_ context.Context, l *entity.Listing, reason string) {
	n.log.Info().Str("listing_id", l.ID).Str("owner_id", l.OwnerID).Str("reason", reason).
		Msg("edición rechazada")
}
