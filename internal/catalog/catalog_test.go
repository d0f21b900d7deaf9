package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"evergrain-service/internal/models"
	"evergrain-service/internal/store"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testStore() *store.Store {
	return store.New(store.NewMemoryKV(0), "test", testLogger())
}

func seedProducts() []models.Product {
	return []models.Product{
		{ID: 1, TitleEN: "Walnut Tray", PriceEN: "$85"},
		{ID: 2, TitleEN: "Oak Board", PriceEN: "$60"},
	}
}

func newTestCatalog(t *testing.T) (*Catalog, *store.Store) {
	t.Helper()
	st := testStore()
	return New(st, seedProducts(), nil, testLogger()), st
}

func TestAddAllocatesIDsAboveSeedRange(t *testing.T) {
	cat, _ := newTestCatalog(t)

	first := cat.Add(models.Product{Title: "Cedar Box"})
	second := cat.Add(models.Product{Title: "Ash Shelf"})

	assert.Equal(t, models.SeedRangeMax+1, first.ID)
	assert.Equal(t, models.SeedRangeMax+2, second.ID)
}

func TestAddAllocatesAboveExistingCustomIDs(t *testing.T) {
	st := testStore()
	st.SaveCatalog(context.Background(), models.Snapshot{
		RemovedIDs:     []int{},
		CustomProducts: []models.Product{{ID: 42, Title: "Imported"}},
	})

	cat := New(st, nil, nil, testLogger())
	added := cat.Add(models.Product{Title: "Next"})
	assert.Equal(t, 43, added.ID)
}

func TestAddNormalizesBilingualFields(t *testing.T) {
	cat, _ := newTestCatalog(t)

	p := cat.Add(models.Product{
		Title: "Legacy Name",
		Price: "250 ج.م",
		Media: []models.MediaItem{
			{Type: models.MediaTypeImage, URL: "https://example.com/a.jpg"},
			{Type: "bogus", URL: "https://example.com/skip.me"},
		},
	})

	// Legacy input mirrors into the English fields and back.
	assert.Equal(t, "Legacy Name", p.TitleEN)
	assert.Equal(t, "Legacy Name", p.Title)
	assert.Equal(t, "250 ج.م", p.PriceEN)
	assert.Equal(t, models.DefaultBadgeEN, p.BadgeEN)

	// Media is filtered and the derived fields recomputed.
	require.Len(t, p.Media, 1)
	assert.Equal(t, "https://example.com/a.jpg", p.Image)
	assert.Equal(t, []string{"https://example.com/a.jpg"}, p.Images)
}

func TestAddDefaultsTitleAndPrice(t *testing.T) {
	cat, _ := newTestCatalog(t)
	p := cat.Add(models.Product{})
	assert.Equal(t, "New Product", p.TitleEN)
	assert.Equal(t, models.DefaultPrice, p.PriceEN)
}

func TestUpdateSeedProductIsNoOp(t *testing.T) {
	cat, st := newTestCatalog(t)

	title := "Hacked"
	_, ok := cat.Update(1, models.ProductPatch{TitleEN: &title})
	assert.False(t, ok)

	// Seed remains untouched and nothing was persisted for it.
	product, found := cat.Lookup(1)
	require.True(t, found)
	assert.Equal(t, "Walnut Tray", product.TitleEN)
	assert.Empty(t, st.LoadCatalog(context.Background()).CustomProducts)
}

func TestUpdateMergesOnlySentFields(t *testing.T) {
	cat, _ := newTestCatalog(t)
	created := cat.Add(models.Product{Title: "Cedar Box", Price: "$40"})

	price := "$55"
	updated, ok := cat.Update(created.ID, models.ProductPatch{PriceEN: &price})
	require.True(t, ok)

	assert.Equal(t, "$55", updated.PriceEN)
	assert.Equal(t, "Cedar Box", updated.TitleEN)
}

func TestUpdateRecomputesDerivedFieldsWhenMediaPresent(t *testing.T) {
	cat, _ := newTestCatalog(t)
	created := cat.Add(models.Product{Title: "Cedar Box", Image: "https://example.com/old.jpg"})

	media := []models.MediaItem{
		{Type: models.MediaTypeVideo, URL: "https://example.com/v.mp4"},
		{Type: models.MediaTypeImage, URL: "https://example.com/new.jpg"},
	}
	updated, ok := cat.Update(created.ID, models.ProductPatch{Media: &media})
	require.True(t, ok)

	assert.Equal(t, "https://example.com/new.jpg", updated.Image)
	assert.Equal(t, []string{"https://example.com/new.jpg"}, updated.Images)
}

func TestUpdateUnknownID(t *testing.T) {
	cat, _ := newTestCatalog(t)
	title := "x"
	_, ok := cat.Update(999, models.ProductPatch{Title: &title})
	assert.False(t, ok)
}

func TestRemoveSeedHidesNotDeletes(t *testing.T) {
	cat, _ := newTestCatalog(t)

	cat.Remove(1)
	cat.Remove(1) // idempotent

	snap := cat.Snapshot()
	assert.Equal(t, []int{1}, snap.RemovedIDs)

	// Hidden seeds disappear from listings but still resolve by id.
	visible := cat.VisibleProducts()
	for _, p := range visible {
		assert.NotEqual(t, 1, p.ID)
	}
	_, found := cat.Lookup(1)
	assert.True(t, found)
}

func TestRemoveCustomDeletesOutright(t *testing.T) {
	cat, _ := newTestCatalog(t)
	created := cat.Add(models.Product{Title: "Cedar Box"})

	cat.Remove(created.ID)

	_, found := cat.Lookup(created.ID)
	assert.False(t, found)
	assert.Empty(t, cat.Snapshot().CustomProducts)
}

func TestMutationsPersistToStore(t *testing.T) {
	cat, st := newTestCatalog(t)

	created := cat.Add(models.Product{Title: "Cedar Box"})
	cat.Remove(2)

	// A fresh catalog over the same store sees the persisted state.
	reloaded := New(st, seedProducts(), nil, testLogger())
	snap := reloaded.Snapshot()
	assert.Equal(t, []int{2}, snap.RemovedIDs)
	require.Len(t, snap.CustomProducts, 1)
	assert.Equal(t, created.ID, snap.CustomProducts[0].ID)
}

func TestLoadingSignal(t *testing.T) {
	st := testStore()

	// Empty cache: loading until the first reconciliation lands.
	cat := New(st, nil, nil, testLogger())
	assert.True(t, cat.Loading())

	cat.Replace(models.Snapshot{CustomProducts: []models.Product{{ID: 10}}})
	assert.False(t, cat.Loading())

	// Warm cache: never loading, the cached products paint immediately.
	warm := New(st, nil, nil, testLogger())
	assert.False(t, warm.Loading())
}

func TestMarkReconciledClearsLoadingWithoutTouchingState(t *testing.T) {
	cat, _ := newTestCatalog(t)
	created := cat.Add(models.Product{Title: "Cedar Box"})

	cat.MarkReconciled()

	assert.False(t, cat.Loading())
	_, found := cat.Lookup(created.ID)
	assert.True(t, found)
}

func TestExportForceHidesSeedRange(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cat.Remove(2)
	created := cat.Add(models.Product{Title: "Cedar Box"})

	exported := cat.Export()

	// Every seed id is hidden in the published file, visible seeds ship as
	// customProducts so the export is self-contained.
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, exported.RemovedIDs)

	ids := make([]int, 0, len(exported.CustomProducts))
	for _, p := range exported.CustomProducts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, created.ID}, ids) // seed 2 was hidden, so excluded
}

func TestLookupCustomShadowsSeed(t *testing.T) {
	st := testStore()
	st.SaveCatalog(context.Background(), models.Snapshot{
		CustomProducts: []models.Product{{ID: 1, TitleEN: "Republished Tray"}},
	})

	cat := New(st, seedProducts(), nil, testLogger())
	p, found := cat.Lookup(1)
	require.True(t, found)
	assert.Equal(t, "Republished Tray", p.TitleEN)
}

func TestPurgeMedia(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cat.Add(models.Product{Title: "With media", Image: "https://example.com/a.jpg"})
	cat.Add(models.Product{Title: "Without media"})

	touched := cat.PurgeMedia()
	assert.Equal(t, 1, touched)

	for _, p := range cat.Snapshot().CustomProducts {
		assert.Empty(t, p.Media)
		assert.Empty(t, p.Images)
		assert.Equal(t, "", p.Image)
	}

	// Second purge finds nothing to strip.
	assert.Equal(t, 0, cat.PurgeMedia())
}

func TestSnapshotReturnsDeepCopy(t *testing.T) {
	cat, _ := newTestCatalog(t)
	cat.Add(models.Product{Title: "Cedar Box", Features: []string{"solid"}})

	snap := cat.Snapshot()
	snap.CustomProducts[0].Features[0] = "mutated"

	fresh := cat.Snapshot()
	assert.Equal(t, "solid", fresh.CustomProducts[0].Features[0])
}
