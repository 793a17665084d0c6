package entity

import "time"

// Estados del track de creación (primera publicación).
const (
	ListingStatusPending  = "pending"
	ListingStatusApproved = "approved"
	ListingStatusRejected = "rejected" // terminal; el slug queda reservado
)

// Estados del track de edición (cambios sobre un listado ya publicado).
// Solo puede ser distinto de none cuando Status = approved.
const (
	EditStatusNone     = "none"
	EditStatusPending  = "pending"
	EditStatusApproved = "approved" // transitorio: al aprobar se hace merge y vuelve a none
	EditStatusRejected = "rejected"
)

// Fields es el conjunto de campos de presentación del negocio (dirección,
// contacto, tema, servicios...). El núcleo lo trata como un blob opaco: lo
// almacena, lo stage-ea y lo mezcla, pero nunca inspecciona claves
// individuales. El esquema lo define la capa de presentación.
type Fields map[string]any

// FieldBusinessName es la única clave con trato especial: si aparece en una
// edición staged, al aprobarla actualiza la columna business_name además del
// blob de campos.
const FieldBusinessName = "business_name"

// Listing es un sitio de una página publicado bajo un subdominio de la
// plataforma. El slug es inmutable una vez asignado y único global,
// incluyendo listados rechazados.
type Listing struct {
	ID           string
	OwnerID      string
	Slug         string
	BusinessName string
	Fields       Fields
	Status       string // pending, approved, rejected
	EditStatus   string // none, pending, rejected (approved es transitorio)
	PendingEdit  Fields // nil salvo que EditStatus = pending
	RejectReason string // motivo de rechazo del track activo, para auditoría
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPubliclyVisible indica si el listado se sirve en su subdominio.
// Una edición pendiente nunca afecta la visibilidad: mientras EditStatus sea
// pending se siguen sirviendo exactamente los campos aprobados.
func (l *Listing) IsPubliclyVisible() bool {
	return l.Status == ListingStatusApproved
}

// Clone devuelve una copia profunda a nivel de mapas (los valores se copian
// por referencia; el núcleo nunca muta valores internos del blob).
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
