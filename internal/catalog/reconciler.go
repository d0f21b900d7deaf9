package catalog

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"evergrain-service/internal/models"
)

// SnapshotFetcher retrieves the authoritative remote snapshot.
type SnapshotFetcher interface {
	Fetch(ctx context.Context) (*models.Snapshot, error)
}

// Reconciler replaces the in-memory catalog with the published remote
// snapshot. The catalog seeds from cache first for instant availability, then
// a reconciliation runs in the background; on success the remote state wins
// wholesale (last-publisher-wins, no field merge), on terminal failure the
// seeded state stands and nothing is written.
type Reconciler struct {
	mu      sync.Mutex
	catalog *Catalog
	fetcher SnapshotFetcher
	logger  *logrus.Entry
}

// NewReconciler creates a Reconciler over the catalog and fetcher.
func NewReconciler(catalog *Catalog, fetcher SnapshotFetcher, logger *logrus.Logger) *Reconciler {
	return &Reconciler{
		catalog: catalog,
		fetcher: fetcher,
		logger:  logger.WithField("component", "reconciler"),
	}
}

// Start kicks off a background reconciliation. Failures are logged, never
// escalated: the storefront silently degrades to last known good.
func (r *Reconciler) Start(ctx context.Context) {
	go func() {
		if err := r.Reconcile(ctx); err != nil {
			r.logger.WithError(err).Warn("Initial catalog reconciliation failed, serving cached state")
		}
	}()
}

// Reconcile fetches the remote snapshot and applies it. Reconciliations are
// serialized, so the catalog never moves backwards past a completed one. A
// structurally empty remote snapshot is rejected while the local state is
// non-empty: a misconfigured placeholder file must not wipe a populated
// storefront.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.fetcher.Fetch(ctx)
	if err != nil {
		r.catalog.MarkReconciled()
		return err
	}

	if snap.IsEmpty() && !r.catalog.Snapshot().IsEmpty() {
		r.logger.Warn("Remote snapshot is empty, keeping cached catalog")
		r.catalog.MarkReconciled()
		return nil
	}

	r.catalog.Replace(*snap)
	r.catalog.publisher.PublishCatalogReconciled(*snap)
	r.logger.WithFields(logrus.Fields{
		"products":   len(snap.CustomProducts),
		"removedIds": len(snap.RemovedIDs),
	}).Info("Catalog reconciled from remote snapshot")
	return nil
}
