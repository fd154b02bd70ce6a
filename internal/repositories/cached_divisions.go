package repositories

import (
	"context"
	gocache "github.com/patrickmn/go-cache"
	"strings"
	"time"
)

type divisionRepository interface {
	GetCodesByName(ctx context.Context, source, revision, name string) ([]string, error)
}

type CachedDivisions struct {
	repo  divisionRepository
	cache *gocache.Cache
}

func NewCachedDivisions(repo divisionRepository) *CachedDivisions {
	return &CachedDivisions{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c CachedDivisions) GetCodesByName(ctx context.Context, source, revision, name string) ([]string, error) {
	key := strings.Join([]string{source, revision, name}, "|")
	if value, found := c.cache.Get(key); found {
		return value.([]string), nil
	}

	codes, err := c.repo.GetCodesByName(ctx, source, revision, name)
	if err != nil {
		return nil, err
	}

	if len(codes) > 0 {
		c.cache.Set(key, codes, gocache.DefaultExpiration)
	}

	return codes, nil
}
