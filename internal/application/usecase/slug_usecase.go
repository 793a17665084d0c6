package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/tu-usuario/minegocio/internal/application/dto"
	"github.com/tu-usuario/minegocio/internal/domain/repository"
	"github.com/tu-usuario/minegocio/pkg/slug"
)

const (
	maxSuggestions = 5
	// maxProbes acota las consultas de unicidad por verificación: con un slug
	// muy disputado preferimos devolver menos sugerencias a martillar la DB.
	maxProbes = 50
)

// SlugUseCase verificación informativa de disponibilidad de slugs y
// generación de alternativas. Solo aconseja: la verificación autoritativa la
// hace el alta del listado contra el índice único, dentro de su transacción.
// No guarda estado, así que es seguro bajo llamadas concurrentes para el
// mismo candidato.
type SlugUseCase struct {
	listings repository.ListingRepository
}

// NewSlugUseCase construye el caso de uso con el puerto de persistencia.
func NewSlugUseCase(listings repository.ListingRepository) *SlugUseCase {
	return &SlugUseCase{listings: listings}
}

// CheckAvailability normaliza el candidato y consulta la reserva global de
// slugs (los listados rechazados también reservan el suyo). Si está tomado,
// propone hasta 5 alternativas verificadas: sufijos -2, -3, ... y una
// variante con sufijo aleatorio de 4 dígitos en el último lugar.
func (uc *SlugUseCase) CheckAvailability(ctx context.Context, candidate string) (*dto.SlugCheckResponse, error) {
	normalized := slug.Make(candidate)
	resp := &dto.SlugCheckResponse{
		NormalizedSlug: normalized,
		Suggestions:    []string{},
	}
	if !slug.IsValid(normalized) {
		// Demasiado corto o largo: no disponible y sin sugerencias.
		return resp, nil
	}

	exists, err := uc.listings.SlugExists(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("verificar slug: %w", err)
	}
	if !exists {
		resp.Available = true
		return resp, nil
	}

	suggestions, err := uc.suggest(ctx, normalized)
	if err != nil {
		return nil, err
	}
	resp.Suggestions = suggestions
	return resp, nil
}

// suggest genera alternativas disponibles. Los primeros cuatro lugares los
// llenan sufijos numéricos crecientes; el último lo ocupa una variante
// aleatoria de 4 dígitos (si se encuentra dentro del presupuesto de sondas,
// si no se completa con más sufijos numéricos).
func (uc *SlugUseCase) suggest(ctx context.Context, base string) ([]string, error) {
	suggestions := make([]string, 0, maxSuggestions)
	probes := 0

	probe := func(candidate string) (bool, error) {
		probes++
		exists, err := uc.listings.SlugExists(ctx, candidate)
		if err != nil {
			return false, fmt.Errorf("verificar sugerencia: %w", err)
		}
		return !exists, nil
	}

	// Sufijos numéricos: slug-2, slug-3, ... hasta llenar 4 lugares.
	for n := 2; probes < maxProbes && len(suggestions) < maxSuggestions-1; n++ {
		candidate := withSuffix(base, fmt.Sprintf("-%d", n))
		ok, err := probe(candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			suggestions = append(suggestions, candidate)
		}
	}

	// Variante aleatoria de 4 dígitos para el último lugar.
	for probes < maxProbes && len(suggestions) < maxSuggestions {
		candidate := withSuffix(base, fmt.Sprintf("-%d", 1000+rand.Intn(9000)))
		ok, err := probe(candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			suggestions = append(suggestions, candidate)
			break
		}
	}

	return suggestions, nil
}

// withSuffix añade el sufijo recortando la base si hiciera falta para no
// superar la longitud máxima. Toda sugerencia devuelta es un slug válido.
func withSuffix(base, suffix string) string {
	if len(base)+len(suffix) > slug.MaxLength {
		base = strings.TrimRight(base[:slug.MaxLength-len(suffix)], "-")
	}
	return base + suffix
}
