package store

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"evergrain-service/internal/models"
)

// Store persists the storefront's state as namespaced JSON strings: the
// catalog snapshot, per-cart projections and admin session flags. It is a
// passive cache with last-writer-wins semantics. Loads never fail — absence
// or corruption degrades to an empty default — and failed saves are logged
// and swallowed because the in-memory state remains the copy of record for
// the session.
type Store struct {
	kv        KV
	namespace string
	logger    *logrus.Entry
}

// New creates a Store over the given KV under an application namespace
// (e.g. "evergrain").
func New(kv KV, namespace string, logger *logrus.Logger) *Store {
	return &Store{
		kv:        kv,
		namespace: namespace,
		logger:    logger.WithField("component", "store"),
	}
}

func (s *Store) catalogKey() string {
	return s.namespace + ":catalog"
}

func (s *Store) cartKey(cartID string) string {
	return s.namespace + ":cart:" + cartID
}

func (s *Store) sessionKey(token string) string {
	return s.namespace + ":session:" + token
}

// LoadCatalog reads the cached catalog snapshot. Absent or unparseable data
// yields the empty snapshot; it never returns an error.
func (s *Store) LoadCatalog(ctx context.Context) models.Snapshot {
	raw, err := s.kv.Get(ctx, s.catalogKey())
	if err != nil {
		if err != ErrNotFound {
			s.logger.WithError(err).Warn("Failed to read cached catalog, starting empty")
		}
		return models.EmptySnapshot()
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.WithError(err).Warn("Cached catalog is corrupt, starting empty")
		return models.EmptySnapshot()
	}
	snap.Normalize()
	return snap
}

// SaveCatalog writes the catalog snapshot. A rejected write (capacity, Redis
// down) is logged and swallowed; the previous cached value stays intact.
func (s *Store) SaveCatalog(ctx context.Context, snap models.Snapshot) {
	snap.Normalize()
	raw, err := json.Marshal(snap)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to serialize catalog snapshot")
		return
	}
	if err := s.kv.Set(ctx, s.catalogKey(), string(raw)); err != nil {
		s.logger.WithError(err).Warn("Failed to persist catalog snapshot, keeping in-memory state only")
	}
}

// LoadCart reads a cart's minimal projection, empty on absence or corruption.
func (s *Store) LoadCart(ctx context.Context, cartID string) []models.CartItem {
	raw, err := s.kv.Get(ctx, s.cartKey(cartID))
	if err != nil {
		return []models.CartItem{}
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []models.CartItem{}
	}
	return items
}

// SaveCart persists a cart's minimal projection, swallowing failures.
func (s *Store) SaveCart(ctx context.Context, cartID string, items []models.CartItem) {
	if items == nil {
		items = []models.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to serialize cart")
		return
	}
	if err := s.kv.Set(ctx, s.cartKey(cartID), string(raw)); err != nil {
		s.logger.WithError(err).WithField("cartId", cartID).Warn("Failed to persist cart")
	}
}

// DeleteCart removes a cart after checkout.
func (s *Store) DeleteCart(ctx context.Context, cartID string) {
	if err := s.kv.Delete(ctx, s.cartKey(cartID)); err != nil {
		s.logger.WithError(err).WithField("cartId", cartID).Warn("Failed to delete cart")
	}
}

// PutSession records an admin session token.
func (s *Store) PutSession(ctx context.Context, token string) error {
	return s.kv.Set(ctx, s.sessionKey(token), "true")
}

// HasSession reports whether an admin session token is live.
func (s *Store) HasSession(ctx context.Context, token string) bool {
	val, err := s.kv.Get(ctx, s.sessionKey(token))
	return err == nil && val == "true"
}

// DeleteSession revokes an admin session token.
func (s *Store) DeleteSession(ctx context.Context, token string) {
	if err := s.kv.Delete(ctx, s.sessionKey(token)); err != nil {
		s.logger.WithError(err).Warn("Failed to delete session token")
	}
}
