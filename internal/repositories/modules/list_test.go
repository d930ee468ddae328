package modules

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
	"github.com/dmitrijs2005/trainingkeeper/internal/identity"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_BootstrapIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first := e.repo.List(ctx)
	assert.Equal(t, []string{"dashboards", "maps"}, ids(first))
	assert.Equal(t, 2, e.fetcher.total())

	second := e.repo.List(ctx)
	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, 2, e.fetcher.total(), "second list must not fetch again")

	stored := e.stored(t)
	require.Len(t, stored, 2)
	for _, rec := range stored {
		assert.Equal(t, admin.Ref(), rec.User)
		assert.Equal(t, admin.Ref(), rec.LastUpdatedBy)
		assert.Equal(t, t0, rec.Created)
		assert.Equal(t, t0, rec.LastUpdated)
	}
}

func TestList_StoredWinsOverBundle(t *testing.T) {
	e := newEnv(t)
	edited := bundled("maps")
	edited.Name = models.NewText("maps-name", "My maps")
	e.put(t, edited)

	mods := e.repo.List(context.Background())
	require.Len(t, mods, 2)
	assert.Equal(t, "maps", mods[0].ID)
	assert.Equal(t, "My maps", mods[0].Name.ReferenceValue)
	assert.Equal(t, 0, e.fetcher.calls["maps"])
	assert.Equal(t, 1, e.fetcher.calls["dashboards"])
}

func TestList_ToleratesUnavailableDefaults(t *testing.T) {
	e := newEnv(t, "dashboards", "maps", "bulk-load")
	e.fetcher.errs["maps"] = errors.New("connection reset")
	e.fetcher.archives["bulk-load"] = []byte("not a zip")

	out := e.repo.ListOutcome(context.Background())
	assert.True(t, out.OK())
	assert.Equal(t, []string{"dashboards"}, ids(out.Value))
	assert.Equal(t, []string{"dashboards"}, ids(e.stored(t)))
}

func TestList_NeverFailsOnStoreFailure(t *testing.T) {
	e := newEnv(t)
	e.repo.store = storage.NewClient(failingKV{})

	mods := e.repo.List(context.Background())
	require.NotNil(t, mods)
	assert.Empty(t, mods)

	out := e.repo.ListOutcome(context.Background())
	assert.Equal(t, StatusDegraded, out.Status)
	assert.Error(t, out.Err)
	assert.NotNil(t, out.Value)
}

func TestList_DegradesOnCollaboratorFailures(t *testing.T) {
	e := newEnv(t)
	e.instance.err = errors.New("instance down")

	out := e.repo.ListOutcome(context.Background())
	assert.Equal(t, StatusDegraded, out.Status)
	assert.Empty(t, out.Value)

	e = newEnv(t)
	e.repo.users = identity.ContextProvider{}
	out = e.repo.ListOutcome(context.Background())
	assert.Equal(t, StatusDegraded, out.Status)
	assert.ErrorIs(t, out.Err, common.ErrorUnauthorized)
}

func TestListOutcome_UnsupportedVersionIsFatal(t *testing.T) {
	e := newEnv(t)
	future := bundled("future")
	future.Version = 2
	e.put(t, future)

	out := e.repo.ListOutcome(context.Background())
	assert.Equal(t, StatusFatal, out.Status)
	assert.ErrorIs(t, out.Err, common.ErrUnsupportedVersion)
	assert.NotNil(t, out.Value)
	assert.Empty(t, out.Value)
}

func TestList_FiltersByAuthoritiesAndSharing(t *testing.T) {
	e := newEnv(t, []string{}...)

	public := bundled("public")
	needsAuthority := bundled("needs-authority")
	needsAuthority.DhisAuthorities = []string{"M_dhis-web-maps"}
	private := bundled("private")
	private.PublicAccess = models.DefaultPublicAccess
	shared := bundled("shared")
	shared.PublicAccess = models.DefaultPublicAccess
	shared.UserGroupAccesses = []models.Access{{ID: "trainers", Access: "r-------"}}
	owned := bundled("owned")
	owned.PublicAccess = models.DefaultPublicAccess
	owned.User = bob.Ref()
	e.put(t, public, needsAuthority, private, shared, owned)

	ctx := identity.WithUser(context.Background(), bob)
	assert.Equal(t, []string{"public", "shared", "owned"}, ids(e.repo.List(ctx)))

	assert.Equal(t, []string{"public", "needs-authority", "private", "shared", "owned"}, ids(e.repo.List(context.Background())))
}

func TestList_DerivedFields(t *testing.T) {
	e := newEnv(t, []string{}...)
	rec := bundled("m1")
	rec.Type = "bogus"
	rec.DhisVersionRange = "2,3"
	rec.UserAccesses = []models.Access{{ID: "bob", Access: "rw------"}}
	other := bundled("m2")
	other.DhisVersionRange = "4"
	other.DhisLaunchUrl = "/dhis-web-maps/"
	e.put(t, rec, other)

	e.instance.version = "3.1.0"
	e.instance.installed["/dhis-web-maps/"] = true
	require.NoError(t, e.store.SaveInCollection(context.Background(), ProgressNamespace("bob"), "m1",
		models.Progress{ID: "m1", LastStep: 2, Completed: true}))

	mods := e.repo.List(identity.WithUser(context.Background(), bob))
	require.Len(t, mods, 2)

	m1, m2 := mods[0], mods[1]
	assert.Equal(t, models.TrainingTypeApp, m1.Type)
	assert.True(t, m1.Compatible)
	assert.False(t, m1.Installed)
	assert.True(t, m1.Editable)
	assert.Equal(t, models.Progress{ID: "m1", LastStep: 2, Completed: true}, m1.Progress)

	assert.False(t, m2.Compatible)
	assert.True(t, m2.Installed)
	assert.False(t, m2.Editable)
	assert.Equal(t, models.DefaultProgress("m2"), m2.Progress)
}

func TestGet_SyntheticIDs(t *testing.T) {
	e := newEnv(t)

	mod, err := e.repo.Get(context.Background(), "maps")
	require.NoError(t, err)
	require.NotNil(t, mod)

	require.Len(t, mod.Contents.Steps, 2)
	assert.Equal(t, "maps-step-0", mod.Contents.Steps[0].ID)
	assert.Equal(t, "maps-step-1", mod.Contents.Steps[1].ID)
	assert.Equal(t, "maps-page-0-0", mod.Contents.Steps[0].Pages[0].ID)
	assert.Equal(t, "maps-page-1-0", mod.Contents.Steps[1].Pages[0].ID)

	assert.Equal(t, []string{"maps"}, ids(e.stored(t)), "get bootstraps only the requested default")
}

func TestGet_Absent(t *testing.T) {
	e := newEnv(t)

	mod, err := e.repo.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, mod)
	assert.Equal(t, 0, e.fetcher.total(), "non-default ids are never fetched")

	e.fetcher.errs["maps"] = errors.New("offline")
	mod, err = e.repo.Get(context.Background(), "maps")
	require.NoError(t, err)
	assert.Nil(t, mod)
}

func TestGet_SkipsVisibilityFilter(t *testing.T) {
	e := newEnv(t, []string{}...)
	private := bundled("private")
	private.PublicAccess = models.DefaultPublicAccess
	private.DhisAuthorities = []string{"F_SECRET"}
	e.put(t, private)

	mod, err := e.repo.Get(identity.WithUser(context.Background(), bob), "private")
	require.NoError(t, err)
	require.NotNil(t, mod)
	assert.False(t, mod.Editable)
}

func TestGet_Errors(t *testing.T) {
	e := newEnv(t)
	future := bundled("future")
	future.Version = 3
	e.put(t, future)

	_, err := e.repo.Get(context.Background(), "future")
	assert.ErrorIs(t, err, common.ErrUnsupportedVersion)

	e.repo.store = storage.NewClient(failingKV{})
	_, err = e.repo.Get(context.Background(), "maps")
	assert.Error(t, err)
}

func TestMergeByID(t *testing.T) {
	a1 := models.PersistedModule{ID: "a", Icon: "first"}
	a2 := models.PersistedModule{ID: "a", Icon: "second"}
	b := models.PersistedModule{ID: "b"}

	out := mergeByID([]models.PersistedModule{a1, b}, []models.PersistedModule{a2})
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Icon)
}
