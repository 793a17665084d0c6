package dto

import "time"

// CreateListingRequest alta de un listado. Fields es el blob de presentación
// (dirección, contacto, servicios...); el núcleo no inspecciona sus claves.
type CreateListingRequest struct {
	Slug         string         `json:"slug"`
	BusinessName string         `json:"business_name"`
	Fields       map[string]any `json:"fields"`
}

// StageEditRequest propone un change set sobre un listado ya publicado.
// Cada clave presente reemplaza por completo el campo vivo al aprobarse.
type StageEditRequest struct {
	Changes map[string]any `json:"changes"`
}

// DecisionRequest cuerpo de las acciones de moderación que rechazan
// (el motivo es opcional y se guarda para auditoría).
type DecisionRequest struct {
	Reason string `json:"reason"`
}

// ListingResponse vista de gestión (dueño o moderador): incluye el estado de
// ambos tracks y, si existe, la edición staged en revisión.
type ListingResponse struct {
	ID           string         `json:"id"`
	OwnerID      string         `json:"owner_id"`
	Slug         string         `json:"slug"`
	SiteURL      string         `json:"site_url"`
	BusinessName string         `json:"business_name"`
	Fields       map[string]any `json:"fields"`
	Status       string         `json:"status"`
	EditStatus   string         `json:"edit_status"`
	PendingEdit  map[string]any `json:"pending_edit,omitempty"`
	RejectReason string         `json:"reject_reason,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// PublicSiteResponse vista pública del sitio: solo los campos aprobados.
// No existe ningún campo de edición staged en este DTO a propósito — la ruta
// pública no puede filtrar contenido sin aprobar.
type PublicSiteResponse struct {
	Slug         string         `json:"slug"`
	SiteURL      string         `json:"site_url"`
	BusinessName string         `json:"business_name"`
	Fields       map[string]any `json:"fields"`
}

// ListingListResponse listado paginado para vistas de gestión y moderación.
type ListingListResponse struct {
	Items []ListingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
