package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"evergrain-service/internal/models"
	"evergrain-service/internal/retry"
)

// SnapshotClient retrieves the authoritative catalog snapshot from the
// published initial-products.json (static asset or API base path). The remote
// file is the durable source of truth; this client only ever reads it.
type SnapshotClient struct {
	url        string
	policy     retry.Policy
	httpClient *http.Client
}

// NewSnapshotClient creates a snapshot client for the resolved endpoint URL.
func NewSnapshotClient(url string, policy retry.Policy) *SnapshotClient {
	return &SnapshotClient{
		url:    url,
		policy: policy,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Fetch retrieves the snapshot, retrying per the configured policy. Terminal
// failure returns (nil, err); callers degrade to their cached state and never
// surface the failure to shoppers.
func (c *SnapshotClient) Fetch(ctx context.Context) (*models.Snapshot, error) {
	var snap *models.Snapshot
	err := retry.Do(ctx, c.policy, func(ctx context.Context) error {
		fetched, err := c.fetchOnce(ctx)
		if err != nil {
			log.Printf("[CATALOG] Snapshot fetch failed: %v", err)
			return err
		}
		snap = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *SnapshotClient) fetchOnce(ctx context.Context) (*models.Snapshot, error) {
	// Cache buster so a stale intermediary never masks a newer publish.
	sep := "?"
	if strings.Contains(c.url, "?") {
		sep = "&"
	}
	url := c.url + sep + "v=" + strconv.FormatInt(time.Now().UnixMilli(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("snapshot endpoint returned status %d", resp.StatusCode)
	}

	var snap models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}
