package hardcover

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// entityCacheTTL bounds how long an entity listing may be served without a
// refetch.
const entityCacheTTL = time.Minute

// entityCache is a single-entry snapshot cache for selectable entities.
// "Check freshness, else refetch and store" runs under one lock so two
// concurrent callers cannot race a redundant refetch or tear the
// entries/timestamp pair. The raw slice is never exposed for mutation.
type entityCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   []Entity
	fetchedAt time.Time
	now       func() time.Time
}

func newEntityCache(ttl time.Duration) *entityCache {
	return &entityCache{ttl: ttl, now: time.Now}
}

// get returns the cached entities when fresh, otherwise runs fetch and
// stores the result.
func (c *entityCache) get(ctx context.Context, fetch func(context.Context) []Entity) []Entity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.entries
	}
	c.entries = fetch(ctx)
	c.fetchedAt = c.now()
	return c.entries
}

func (c *entityCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.fetchedAt = time.Time{}
}

// BookEntities lists the currently-reading books as selectable id/title
// pairs, served through the snapshot cache. An empty result forces one
// cache-clear retry; if that still yields nothing, ErrNoBooksFound is
// returned so strict callers can distinguish "nothing there" from a bare
// empty list.
func (c *Client) BookEntities(ctx context.Context) ([]Entity, error) {
	fetch := func(ctx context.Context) []Entity {
		records := c.FetchCurrentlyReading(ctx)
		entities := make([]Entity, 0, len(records))
		for _, r := range records {
			entities = append(entities, Entity{ID: r.ID, Title: r.Title})
		}
		return entities
	}
	list := c.books.get(ctx, fetch)
	if len(list) == 0 {
		c.books.clear()
		list = c.books.get(ctx, fetch)
	}
	if len(list) == 0 {
		return nil, ErrNoBooksFound
	}
	return list, nil
}

// ReleaseEntities lists upcoming releases as selectable id/title pairs,
// with the same forced-retry semantics as BookEntities.
func (c *Client) ReleaseEntities(ctx context.Context) ([]Entity, error) {
	fetch := func(ctx context.Context) []Entity {
		releases := c.FetchUpcomingReleases(ctx, 30)
		entities := make([]Entity, 0, len(releases))
		for _, r := range releases {
			entities = append(entities, Entity{ID: strconv.Itoa(r.EditionID), Title: r.Title})
		}
		return entities
	}
	list := c.releases.get(ctx, fetch)
	if len(list) == 0 {
		c.releases.clear()
		list = c.releases.get(ctx, fetch)
	}
	if len(list) == 0 {
		return nil, ErrNoReleasesFound
	}
	return list, nil
}
