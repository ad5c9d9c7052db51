package session

import (
	"context"

	"github.com/kapu/vidchat-go/internal/constants"
	"github.com/kapu/vidchat-go/internal/domain"
	"github.com/kapu/vidchat-go/internal/storage"
	"go.uber.org/zap"
)

// TranscriptCache is the bounded most-recently-used list of processed video
// results, persisted under a single storage key. At most MaxEntries entries,
// unique by URL; insertion or re-insertion moves an entry to the front.
type TranscriptCache struct {
	store  storage.Store
	logger *zap.Logger
}

func NewTranscriptCache(store storage.Store, logger *zap.Logger) *TranscriptCache {
	return &TranscriptCache{store: store, logger: logger}
}

// Get looks up a previously processed URL by exact string match.
func (c *TranscriptCache) Get(ctx context.Context, url string) (*domain.CacheEntry, bool) {
	for _, entry := range c.Entries(ctx) {
		if entry.URL == url {
			return &entry, true
		}
	}
	return nil, false
}

// Put inserts a processed result at the front, deduplicating by URL and
// truncating to the configured maximum. Read-then-write with no locking;
// concurrent writers race and the last one wins.
func (c *TranscriptCache) Put(ctx context.Context, url, videoName, transcript string) error {
	entries := c.Entries(ctx)

	kept := make([]domain.CacheEntry, 0, len(entries)+1)
	kept = append(kept, domain.NewCacheEntry(url, videoName, transcript))
	for _, entry := range entries {
		if entry.URL != url {
			kept = append(kept, entry)
		}
	}

	if len(kept) > constants.CacheConfig.MaxEntries {
		kept = kept[:constants.CacheConfig.MaxEntries]
	}

	return c.store.Set(ctx, constants.CacheConfig.ListKey, kept)
}

// Entries returns the cached results, most recent first. Storage failures and
// malformed payloads read as an empty cache.
func (c *TranscriptCache) Entries(ctx context.Context) []domain.CacheEntry {
	var entries []domain.CacheEntry
	found, err := c.store.Get(ctx, constants.CacheConfig.ListKey, &entries)
	if err != nil {
		c.logger.Warn("Transcript cache read failed", zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	return entries
}
