package jokes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
)

type (
	// CachedJokes puts a small in-memory cache in front of joke reads.
	// Jokes never change after creation so entries are only ever
	// primed, never invalidated.
	CachedJokes struct {
		store *Store
		cache *bigcache.BigCache
	}
)

func NewCachedJokes(store *Store) *CachedJokes {
	cache, _ := bigcache.NewBigCache(bigcache.DefaultConfig(10 * time.Minute))
	return &CachedJokes{
		store: store,
		cache: cache,
	}
}

func (c *CachedJokes) GetJoke(ctx context.Context, id string) (*Joke, error) {
	buf, err := c.cache.Get(id)
	if err == nil {
		var j Joke
		if json.Unmarshal(buf, &j) == nil {
			return &j, nil
		}
	} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, fmt.Errorf("unable to read joke %v from cache, cause %w", id, err)
	}
	j, err := c.store.GetJoke(ctx, id)
	if err != nil {
		return nil, err
	}
	c.prime(j)
	return j, nil
}

func (c *CachedJokes) CreateJoke(ctx context.Context, ownerID, name, content string) (*Joke, error) {
	j, err := c.store.CreateJoke(ctx, ownerID, name, content)
	if err != nil {
		return nil, err
	}
	c.prime(j)
	return j, nil
}

func (c *CachedJokes) ListJokes(ctx context.Context) ([]Joke, error) {
	return c.store.ListJokes(ctx)
}

func (c *CachedJokes) prime(j *Joke) {
	buf, err := json.Marshal(j)
	if err != nil {
		return
	}
	c.cache.Set(j.ID, buf)
}
