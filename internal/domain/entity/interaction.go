package entity

import "time"

// Tipos de interacción registrables sobre un listado publicado.
const (
	EventVisitor       = "visitor"
	EventCallClick     = "call_click"
	EventWhatsAppClick = "whatsapp_click"
	EventGalleryView   = "gallery_view"
	EventMapClick      = "map_click"
)

// EventTypes lista todos los tipos en orden estable (para totales y DTOs).
var EventTypes = []string{
	EventVisitor, EventCallClick, EventWhatsAppClick, EventGalleryView, EventMapClick,
}

// IsValidEventType valida el tipo recibido del cliente.
func IsValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// DailyStat es una fila materializada del contador diario:
// (listing, fecha, tipo) → cantidad. Count nunca decrece dentro del día y la
// fila no se reescribe cuando el día ya pasó (append-only por día).
type DailyStat struct {
	ListingID string
	Date      time.Time // truncada a día, UTC
	EventType string
	Count     int64
}
