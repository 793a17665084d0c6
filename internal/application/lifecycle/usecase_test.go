package lifecycle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/minegocio/internal/application/lifecycle"
	"github.com/tu-usuario/minegocio/internal/domain"
	"github.com/tu-usuario/minegocio/internal/domain/entity"
	"github.com/tu-usuario/minegocio/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria: reproduce la semántica condicional de los adaptadores de
// PostgreSQL (updates con estado esperado en el WHERE, índice único de slug)
// bajo un mutex, para probar la máquina de estados sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	users    map[string]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		listings: map[string]*entity.Listing{},
		users:    map[string]*entity.User{},
	}
}

func (s *memStore) listingRepo() repository.ListingRepository { return &memListings{s} }
func (s *memStore) userRepo() repository.UserRepository       { return &memUsers{s} }

// Run implementa lifecycle.TxRunner. Las operaciones del store ya son
// atómicas bajo el mutex, así que la "transacción" es el propio callback.
func (s *memStore) Run(_ context.Context, fn func(repository.ListingRepository, repository.UserRepository) error) error {
	return fn(s.listingRepo(), s.userRepo())
}

func (s *memStore) putUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	s.users[u.ID] = &c
}

func (s *memStore) userRole(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u.Role
	}
	return ""
}

func cloneListing(l *entity.Listing) *entity.Listing {
	c := *l
	c.Fields = l.Fields.Clone()
	c.PendingEdit = l.PendingEdit.Clone()
	return &c
}

// ── ListingRepository ────────────────────────────────────────────────────────

type memListings struct{ s *memStore }

func (r *memListings) Create(_ context.Context, l *entity.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.listings {
		if existing.Slug == l.Slug {
			return domain.ErrSlugConflict
		}
	}
	r.s.listings[l.ID] = cloneListing(l)
	return nil
}

func (r *memListings) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok {
		return nil, nil
	}
	return cloneListing(l), nil
}

func (r *memListings) GetBySlug(_ context.Context, slug string) (*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.listings {
		if l.Slug == slug {
			return cloneListing(l), nil
		}
	}
	return nil, nil
}

func (r *memListings) SlugExists(_ context.Context, slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.listings {
		if l.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *memListings) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.s.listings {
		if l.OwnerID == ownerID {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (r *memListings) ListByStatus(_ context.Context, status string, _, _ int) ([]*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.s.listings {
		if l.Status == status {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (r *memListings) ListPendingEdits(_ context.Context, _, _ int) ([]*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.s.listings {
		if l.EditStatus == entity.EditStatusPending {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (r *memListings) SetStatus(_ context.Context, id, from, to, reason string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok || l.Status != from {
		return false, nil
	}
	l.Status = to
	l.RejectReason = reason
	l.UpdatedAt = now
	return true, nil
}

func (r *memListings) StageEdit(_ context.Context, id string, changes entity.Fields, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok || l.Status != entity.ListingStatusApproved ||
		(l.EditStatus != entity.EditStatusNone && l.EditStatus != entity.EditStatusRejected) {
		return false, nil
	}
	l.PendingEdit = changes.Clone()
	l.EditStatus = entity.EditStatusPending
	l.RejectReason = ""
	l.UpdatedAt = now
	return true, nil
}

func (r *memListings) MergePendingEdit(_ context.Context, id string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok || l.EditStatus != entity.EditStatusPending {
		return false, nil
	}
	for k, v := range l.PendingEdit {
		if k == entity.FieldBusinessName {
			if name, ok := v.(string); ok {
				l.BusinessName = name
			}
			continue
		}
		l.Fields[k] = v
	}
	l.PendingEdit = nil
	l.EditStatus = entity.EditStatusNone
	l.UpdatedAt = now
	return true, nil
}

func (r *memListings) DiscardPendingEdit(_ context.Context, id, reason string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok || l.EditStatus != entity.EditStatusPending {
		return false, nil
	}
	l.PendingEdit = nil
	l.EditStatus = entity.EditStatusNone
	l.RejectReason = reason
	l.UpdatedAt = now
	return true, nil
}

// ── UserRepository ───────────────────────────────────────────────────────────

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.s.putUser(u)
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUsers) PromoteRole(_ context.Context, id, fromRole, toRole string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.Role != fromRole {
		return false, nil
	}
	u.Role = toRole
	return true, nil
}

// ── Notifier de prueba ───────────────────────────────────────────────────────

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) record(ev string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) has(ev string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, got := range n.events {
		if got == ev {
			return true
		}
	}
	return false
}

func (n *recordingNotifier) ListingApproved(_ context.Context, _ *entity.Listing) {
	n.record("listing_approved")
}
func (n *recordingNotifier) ListingRejected(_ context.Context, _ *entity.Listing, _ string) {
	n.record("listing_rejected")
}
func (n *recordingNotifier) EditApproved(_ context.Context, _ *entity.Listing) {
	n.record("edit_approved")
}
func (n *recordingNotifier) EditRejected(_ context.Context, _ *entity.Listing, _ string) {
	n.record("edit_rejected")
}

// ── Helpers ──────────────────────────────────────────────────────────────────

var (
	owner     = lifecycle.Caller{ID: "owner-1", Role: entity.RoleNormal}
	otherUser = lifecycle.Caller{ID: "owner-2", Role: entity.RoleNormal}
	moderator = lifecycle.Caller{ID: "admin-1", Role: entity.RoleMainAdmin}
)

func setup(t *testing.T) (*lifecycle.UseCase, *memStore, *recordingNotifier) {
	t.Helper()
	store := newMemStore()
	store.putUser(&entity.User{ID: owner.ID, Email: "owner@test.dev", Role: entity.RoleNormal})
	store.putUser(&entity.User{ID: otherUser.ID, Email: "other@test.dev", Role: entity.RoleNormal})
	store.putUser(&entity.User{ID: moderator.ID, Email: "admin@test.dev", Role: entity.RoleMainAdmin})
	notifier := &recordingNotifier{}
	return lifecycle.New(store, store.listingRepo(), store.userRepo(), notifier), store, notifier
}

func mustCreate(t *testing.T, uc *lifecycle.UseCase, caller lifecycle.Caller, slug string) *entity.Listing {
	t.Helper()
	l, err := uc.Create(context.Background(), caller, lifecycle.CreateInput{
		DesiredSlug:  slug,
		BusinessName: "Gupta Medical",
		Fields:       entity.Fields{"address": "Calle 1 #2-3", "phone": "3001234567"},
	})
	require.NoError(t, err)
	return l
}

// ──────────────────────────────────────────────────────────────────────────────
// Track de creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NaceEnPending(t *testing.T) {
	uc, _, _ := setup(t)

	l, err := uc.Create(context.Background(), owner, lifecycle.CreateInput{
		DesiredSlug:  "  Gupta   Medical ",
		BusinessName: "Gupta Medical",
	})
	require.NoError(t, err)

	assert.Equal(t, "gupta-medical", l.Slug, "el slug se normaliza en el alta")
	assert.Equal(t, entity.ListingStatusPending, l.Status)
	assert.Equal(t, entity.EditStatusNone, l.EditStatus)
	assert.Equal(t, owner.ID, l.OwnerID)
}

func TestCreate_SlugInvalido(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.Create(context.Background(), owner, lifecycle.CreateInput{DesiredSlug: "ab", BusinessName: "AB"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "slug de menos de 3 caracteres")

	_, err = uc.Create(context.Background(), owner, lifecycle.CreateInput{DesiredSlug: "!!!", BusinessName: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "slug que normaliza a vacío")
}

func TestCreate_SlugTomado(t *testing.T) {
	uc, _, _ := setup(t)
	mustCreate(t, uc, owner, "gupta-medical")

	// Normaliza al mismo slug ya reservado.
	_, err := uc.Create(context.Background(), otherUser, lifecycle.CreateInput{
		DesiredSlug:  "Gupta Medical",
		BusinessName: "Otra Gupta",
	})
	assert.ErrorIs(t, err, domain.ErrSlugConflict)
}

// Dos altas concurrentes con el mismo slug normalizado: exactamente una gana.
func TestCreate_CarreraMismoSlug(t *testing.T) {
	uc, _, _ := setup(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	callers := []lifecycle.Caller{owner, otherUser}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(context.Background(), callers[i], lifecycle.CreateInput{
				DesiredSlug:  "panaderia-central",
				BusinessName: "Panadería Central",
			})
		}(i)
	}
	wg.Wait()

	var okCount, conflictCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case err == domain.ErrSlugConflict:
			conflictCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un alta debe ganar")
	assert.Equal(t, 1, conflictCount, "la otra debe recibir el conflicto de slug")
}

func TestApprove_PublicaYPromueveUnaSolaVez(t *testing.T) {
	uc, store, notifier := setup(t)
	l := mustCreate(t, uc, owner, "gupta-medical")

	approved, err := uc.Approve(context.Background(), moderator, l.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusApproved, approved.Status)
	assert.Equal(t, entity.RoleContentAdmin, store.userRole(owner.ID),
		"la primera aprobación promueve al dueño a content_admin")
	assert.True(t, notifier.has("listing_approved"))

	// Segunda aprobación: error explícito, no éxito silencioso, y el rol no
	// se vuelve a tocar.
	_, err = uc.Approve(context.Background(), moderator, l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.RoleContentAdmin, store.userRole(owner.ID))
}

func TestApprove_SegundoListadoNoCambiaRol(t *testing.T) {
	uc, store, _ := setup(t)
	first := mustCreate(t, uc, owner, "gupta-medical")
	second := mustCreate(t, uc, owner, "gupta-dental")

	_, err := uc.Approve(context.Background(), moderator, first.ID)
	require.NoError(t, err)
	_, err = uc.Approve(context.Background(), moderator, second.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.RoleContentAdmin, store.userRole(owner.ID),
		"la promoción es condicional al rol normal: no se repite ni escala")
}

func TestApprove_Autorizacion(t *testing.T) {
	uc, _, _ := setup(t)
	l := mustCreate(t, uc, owner, "gupta-medical")

	_, err := uc.Approve(context.Background(), owner, l.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "el dueño no puede aprobarse a sí mismo")

	_, err = uc.Approve(context.Background(), moderator, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Approve(context.Background(), lifecycle.Caller{}, l.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestReject_TerminalYReservaSlug(t *testing.T) {
	uc, store, notifier := setup(t)
	l := mustCreate(t, uc, owner, "gupta-medical")

	rejected, err := uc.Reject(context.Background(), moderator, l.ID, "datos incompletos")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusRejected, rejected.Status)
	assert.Equal(t, "datos incompletos", rejected.RejectReason)
	assert.True(t, notifier.has("listing_rejected"))

	// Terminal: no se puede aprobar después del rechazo.
	_, err = uc.Approve(context.Background(), moderator, l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// El rechazo no promueve al dueño ni libera el slug.
	assert.Equal(t, entity.RoleNormal, store.userRole(owner.ID))
	_, err = uc.Create(context.Background(), otherUser, lifecycle.CreateInput{
		DesiredSlug:  "gupta-medical",
		BusinessName: "Clon",
	})
	assert.ErrorIs(t, err, domain.ErrSlugConflict,
		"el slug de un listado rechazado sigue reservado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Track de edición
// ──────────────────────────────────────────────────────────────────────────────

func approvedListing(t *testing.T, uc *lifecycle.UseCase) *entity.Listing {
	t.Helper()
	l := mustCreate(t, uc, owner, "gupta-medical")
	approved, err := uc.Approve(context.Background(), moderator, l.ID)
	require.NoError(t, err)
	return approved
}

func TestStageEdit_NoTocaCamposVivos(t *testing.T) {
	uc, store, _ := setup(t)
	l := approvedListing(t, uc)

	before, err := store.listingRepo().GetByID(context.Background(), l.ID)
	require.NoError(t, err)

	staged, err := uc.StageEdit(context.Background(), owner, l.ID, entity.Fields{"address": "Carrera 9 #10-11"})
	require.NoError(t, err)
	assert.Equal(t, entity.EditStatusPending, staged.EditStatus)
	assert.Equal(t, "Carrera 9 #10-11", staged.PendingEdit["address"])

	// Invariante clave: mientras la edición está en revisión, los campos
	// vivos son idénticos a los de antes de proponerla.
	after, err := store.listingRepo().GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Fields, after.Fields)
	assert.Equal(t, before.BusinessName, after.BusinessName)
}

func TestStageEdit_Restricciones(t *testing.T) {
	uc, _, _ := setup(t)
	l := approvedListing(t, uc)

	_, err := uc.StageEdit(context.Background(), otherUser, l.ID, entity.Fields{"address": "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo el dueño puede proponer ediciones")

	_, err = uc.StageEdit(context.Background(), owner, l.ID, entity.Fields{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "change set vacío")

	_, err = uc.StageEdit(context.Background(), owner, l.ID, entity.Fields{"address": "x"})
	require.NoError(t, err)
	_, err = uc.StageEdit(context.Background(), owner, l.ID, entity.Fields{"phone": "y"})
	assert.ErrorIs(t, err, domain.ErrEditAlreadyPending,
		"solo una edición en vuelo por listado")
}

func TestStageEdit_SoloSobrePublicados(t *testing.T) {
	uc, _, _ := setup(t)
	l := mustCreate(t, uc, owner, "gupta-medical") // sigue en pending

	_, err := uc.StageEdit(context.Background(), owner, l.ID, entity.Fields{"address": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApproveEdit_MergePorClave(t *testing.T) {
	uc, _, notifier := setup(t)
	l := approvedListing(t, uc)

	_, err := uc.StageEdit(context.Background(), owner, l.ID, entity.Fields{
		"address":                "Carrera Nueva 123",
		entity.FieldBusinessName: "Gupta Medical Center",
		"services":               []any{"consulta", "farmacia"},
	})
	require.NoError(t, err)

	merged, err := uc.ApproveEdit(context.Background(), moderator, l.ID)
	require.NoError(t, err)

	assert.Equal(t, "Carrera Nueva 123", merged.Fields["address"], "clave staged reemplaza el campo vivo")
	assert.Equal(t, "3001234567", merged.Fields["phone"], "clave no staged queda intacta")
	assert.Equal(t, "Gupta Medical Center", merged.BusinessName)
	assert.Nil(t, merged.PendingEdit)
	assert.Equal(t, entity.EditStatusNone, merged.EditStatus)
	assert.True(t, notifier.has("edit_approved"))

	// Doble aprobación de edición: conflicto, no éxito silencioso.
	_, err = uc.ApproveEdit(context.Background(), moderator, l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRejectEdit_DejaElListadoIntacto(t *testing.T) {
	uc, store, notifier := setup(t)
	l := approvedListing(t, uc)

	before, err := store.listingRepo().GetByID(context.Background(), l.ID)
	require.NoError(t, err)

	_, err = uc.StageEdit(context.Background(), owner, l.ID, entity.Fields{"address": "Otra dirección"})
	require.NoError(t, err)

	rejected, err := uc.RejectEdit(context.Background(), moderator, l.ID, "dirección no verificable")
	require.NoError(t, err)
	assert.Equal(t, entity.EditStatusNone, rejected.EditStatus)
	assert.Nil(t, rejected.PendingEdit)
	assert.True(t, notifier.has("edit_rejected"))

	after, err := store.listingRepo().GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Fields, after.Fields,
		"los campos vivos quedan exactamente como antes del StageEdit")
	assert.Equal(t, before.BusinessName, after.BusinessName)

	// Tras el rechazo se puede proponer una edición nueva.
	_, err = uc.StageEdit(context.Background(), owner, l.ID, entity.Fields{"address": "Tercera dirección"})
	assert.NoError(t, err)
}

func TestRejectEdit_SinEdicionPendiente(t *testing.T) {
	uc, _, _ := setup(t)
	l := approvedListing(t, uc)

	_, err := uc.RejectEdit(context.Background(), moderator, l.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
