package dto

// SlugCheckResponse resultado de la verificación informativa de un slug.
// Available=true no reserva nada: la verificación autoritativa se repite de
// forma atómica al crear el listado.
type SlugCheckResponse struct {
	Available      bool     `json:"available"`
	NormalizedSlug string   `json:"normalized_slug"`
	Suggestions    []string `json:"suggestions"`
}
