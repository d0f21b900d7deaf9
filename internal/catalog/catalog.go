package catalog

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"evergrain-service/internal/events"
	"evergrain-service/internal/models"
	"evergrain-service/internal/store"
)

// Catalog owns the authoritative in-memory snapshot: which seed products are
// hidden plus every admin-created product. It is the only writer of catalog
// state; the store is a passive cache re-persisted after every mutation.
type Catalog struct {
	mu         sync.RWMutex
	seeds      []models.Product
	removedIDs []int
	custom     []models.Product
	loading    bool

	store     *store.Store
	publisher *events.Publisher
	logger    *logrus.Entry
}

// New creates a Catalog seeded synchronously from the store so the storefront
// is usable immediately, before any remote reconciliation. seeds are the
// compiled-in baseline products for the 1-9 range (currently none ship with
// the service; published snapshots carry everything).
func New(st *store.Store, seeds []models.Product, publisher *events.Publisher, logger *logrus.Logger) *Catalog {
	cached := st.LoadCatalog(context.Background())
	return &Catalog{
		seeds:      seeds,
		removedIDs: cached.RemovedIDs,
		custom:     cached.CustomProducts,
		// Show a loading signal only when there is nothing to paint: first
		// visit with an empty cache while the remote fetch is in flight.
		loading:   len(cached.CustomProducts) == 0,
		store:     st,
		publisher: publisher,
		logger:    logger.WithField("component", "catalog"),
	}
}

// Loading reports whether the catalog is still empty and waiting on the
// first reconciliation.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Snapshot returns a deep copy of the current catalog state.
func (c *Catalog) Snapshot() models.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked().Clone()
}

func (c *Catalog) snapshotLocked() models.Snapshot {
	return models.Snapshot{RemovedIDs: c.removedIDs, CustomProducts: c.custom}
}

// VisibleProducts lists what the storefront shows: seed products not in
// removedIds, followed by all custom products.
func (c *Catalog) VisibleProducts() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Product, 0, len(c.seeds)+len(c.custom))
	for _, p := range c.seeds {
		if !c.isRemovedLocked(p.ID) {
			out = append(out, p.Clone())
		}
	}
	for _, p := range c.custom {
		out = append(out, p.Clone())
	}
	return out
}

// Lookup resolves a product by id, including seed products currently hidden
// from listings. Custom products shadow seeds with the same id, since an
// exported catalog re-publishes former seeds as customProducts.
func (c *Catalog) Lookup(id int) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.custom {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	for _, p := range c.seeds {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Product{}, false
}

func (c *Catalog) isRemovedLocked(id int) bool {
	for _, removed := range c.removedIDs {
		if removed == id {
			return true
		}
	}
	return false
}

// Add creates a product from admin input and returns it. The id is allocated
// strictly above both the seed range and every existing custom id, so a new
// product can never collide with a seed even when all seeds are hidden.
func (c *Catalog) Add(input models.Product) models.Product {
	c.mu.Lock()

	maxID := models.SeedRangeMax
	for _, p := range c.custom {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	product := newProduct(maxID+1, input)
	c.custom = append(c.custom, product)
	c.persistLocked()
	c.mu.Unlock()

	c.publisher.PublishProductCreated(&product)
	return product.Clone()
}

// newProduct normalizes admin input into a complete catalog record: media
// filtered or synthesized from legacy fields, derived image fields, and every
// bilingual field defaulted from its legacy counterpart (and the legacy field
// from the English one).
func newProduct(id int, input models.Product) models.Product {
	media := models.NormalizeMedia(input.Media, input.Images, input.Image)
	image, images := models.DerivedImageFields(media)

	title := firstNonEmpty(input.TitleEN, input.Title, "New Product")
	description := firstNonEmpty(input.DescriptionEN, input.Description)
	shortDescription := firstNonEmpty(input.ShortDescriptionEN, input.ShortDescription)
	badge := firstNonEmpty(input.BadgeEN, input.Badge, models.DefaultBadgeEN)
	price := firstNonEmpty(input.PriceEN, input.Price, models.DefaultPrice)
	features := firstNonEmptyList(input.FeaturesEN, input.Features)

	return models.Product{
		ID: id,

		TitleEN:            title,
		DescriptionEN:      description,
		ShortDescriptionEN: shortDescription,
		BadgeEN:            badge,
		PriceEN:            price,
		FeaturesEN:         features,

		TitleAR:            input.TitleAR,
		DescriptionAR:      input.DescriptionAR,
		ShortDescriptionAR: input.ShortDescriptionAR,
		BadgeAR:            input.BadgeAR,
		PriceAR:            input.PriceAR,
		FeaturesAR:         emptyIfNil(input.FeaturesAR),

		Title:            title,
		Description:      description,
		ShortDescription: shortDescription,
		Badge:            badge,
		Price:            price,
		Features:         features,

		Media:  media,
		Image:  image,
		Images: images,
	}
}

// Remove hides a seed product (idempotent append to removedIds) or hard
// deletes a custom one. Seeds stay recoverable: clearing removedIds restores
// them.
func (c *Catalog) Remove(id int) {
	c.mu.Lock()

	if models.IsSeed(id) {
		if c.isRemovedLocked(id) {
			c.mu.Unlock()
			return
		}
		c.removedIDs = append(c.removedIDs, id)
		c.persistLocked()
		c.mu.Unlock()

		c.publisher.PublishProductHidden(id)
		return
	}

	kept := c.custom[:0]
	deleted := false
	for _, p := range c.custom {
		if p.ID == id {
			deleted = true
			continue
		}
		kept = append(kept, p)
	}
	c.custom = kept
	if deleted {
		c.persistLocked()
	}
	c.mu.Unlock()

	if deleted {
		c.publisher.PublishProductDeleted(id)
	}
}

// Update shallow-merges the patch onto a custom product. Seed-range ids are a
// no-op, enforcing the seed immutability invariant. When the merged record
// carries media, the derived image fields are recomputed.
func (c *Catalog) Update(id int, patch models.ProductPatch) (models.Product, bool) {
	if models.IsSeed(id) {
		return models.Product{}, false
	}

	c.mu.Lock()

	var updated *models.Product
	for i := range c.custom {
		if c.custom[i].ID != id {
			continue
		}
		patch.Apply(&c.custom[i])
		if len(c.custom[i].Media) > 0 {
			image, images := models.DerivedImageFields(c.custom[i].Media)
			c.custom[i].Image = image
			c.custom[i].Images = images
		}
		updated = &c.custom[i]
		break
	}
	if updated == nil {
		c.mu.Unlock()
		return models.Product{}, false
	}

	result := updated.Clone()
	c.persistLocked()
	c.mu.Unlock()

	c.publisher.PublishProductUpdated(&result)
	return result, true
}

// Replace swaps in a freshly reconciled snapshot wholesale and re-persists
// it. Remote is authoritative when reachable.
func (c *Catalog) Replace(snap models.Snapshot) {
	snap.Normalize()
	c.mu.Lock()
	c.removedIDs = snap.RemovedIDs
	c.custom = snap.CustomProducts
	c.loading = false
	c.persistLocked()
	c.mu.Unlock()
}

// MarkReconciled clears the loading signal without touching state, used when
// a reconciliation finishes without replacing anything (terminal fetch
// failure or a rejected empty snapshot).
func (c *Catalog) MarkReconciled() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// Export builds the publishable snapshot for the download-and-commit flow:
// every seed id is force-hidden and all currently visible products (seeds not
// removed, then customs) ship as customProducts, so the published file is
// self-contained.
func (c *Catalog) Export() models.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	removed := make([]int, 0, models.SeedRangeMax)
	for id := models.SeedRangeMin; id <= models.SeedRangeMax; id++ {
		removed = append(removed, id)
	}

	products := make([]models.Product, 0, len(c.seeds)+len(c.custom))
	for _, p := range c.seeds {
		if c.isRemovedLocked(p.ID) {
			continue
		}
		exported := p.Clone()
		exported.Media = models.NormalizeMedia(exported.Media, exported.Images, exported.Image)
		image, images := models.DerivedImageFields(exported.Media)
		exported.Image = image
		exported.Images = images
		products = append(products, exported)
	}
	for _, p := range c.custom {
		products = append(products, p.Clone())
	}

	return models.Snapshot{RemovedIDs: removed, CustomProducts: products}
}

// PurgeMedia strips media, images and image from every custom product and
// re-persists. Used to shrink a snapshot that outgrew the store quota.
// Returns the number of products touched.
func (c *Catalog) PurgeMedia() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	touched := 0
	for i := range c.custom {
		if len(c.custom[i].Media) == 0 && len(c.custom[i].Images) == 0 && c.custom[i].Image == "" {
			continue
		}
		c.custom[i].Media = nil
		c.custom[i].Images = nil
		c.custom[i].Image = ""
		touched++
	}
	if touched > 0 {
		c.persistLocked()
	}
	return touched
}

// persistLocked re-persists the current snapshot. Failures are swallowed by
// the store; the in-memory state remains the copy of record.
func (c *Catalog) persistLocked() {
	c.store.SaveCatalog(context.Background(), c.snapshotLocked())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstNonEmptyList distinguishes "not sent" (nil) from an explicitly empty
// list, which stops the fallback chain.
func firstNonEmptyList(values ...[]string) []string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return []string{}
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
