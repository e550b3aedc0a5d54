package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	sectorsCacheKey   = "catalog:sectors"
	productsCachePfx  = "catalog:products:"
	catalogCacheTTL   = 5 * time.Minute
)

// Service serves normalized catalog data with a Redis read-through cache.
// Concurrent cache misses for the same listing collapse into one query.
type Service struct {
	repo   Repository
	cache  *redis.Client
	logger *slog.Logger
	group  singleflight.Group
}

func NewService(repo Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Sectors lists active product lines.
func (s *Service) Sectors(ctx context.Context) ([]Sector, error) {
	var sectors []Sector
	if s.cacheGet(ctx, sectorsCacheKey, &sectors) {
		return sectors, nil
	}

	result, err, _ := s.group.Do(sectorsCacheKey, func() (interface{}, error) {
		sectors, err := s.repo.ListSectors(ctx)
		if err != nil {
			return nil, err
		}
		s.cacheSet(ctx, sectorsCacheKey, sectors)
		return sectors, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	return result.([]Sector), nil
}

// Combos lists suggested bundles for a sector filtered by system and phase type.
func (s *Service) Combos(ctx context.Context, sectorID int64, systemType, phaseType string) ([]Combo, error) {
	combos, err := s.repo.ListCombos(ctx, sectorID, systemType, phaseType)
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	return combos, nil
}

// Products lists normalized merchandise for a sector, optionally narrowed by
// category or a name search.
func (s *Service) Products(ctx context.Context, filters ListFilters) ([]Product, error) {
	key := productsCacheKey(filters)
	var products []Product
	if s.cacheGet(ctx, key, &products) {
		return products, nil
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		raws, err := s.repo.ListMerchandise(ctx, filters)
		if err != nil {
			return nil, err
		}
		products := NormalizeAll(raws)
		s.cacheSet(ctx, key, products)
		return products, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list merchandise: %w", err)
	}
	return result.([]Product), nil
}

// Product fetches and normalizes a single merchandise record.
func (s *Service) Product(ctx context.Context, id int64) (*Product, error) {
	raw, err := s.repo.GetMerchandise(ctx, id)
	if err != nil {
		return nil, err
	}
	product := Normalize(*raw)
	return &product, nil
}

// WarmCache refreshes the sector listing and the unfiltered product listing.
// Invoked by the scheduled warmup job.
func (s *Service) WarmCache(ctx context.Context) error {
	sectors, err := s.repo.ListSectors(ctx)
	if err != nil {
		return fmt.Errorf("warm sectors: %w", err)
	}
	s.cacheSet(ctx, sectorsCacheKey, sectors)

	for _, sector := range sectors {
		id := sector.ID
		filters := ListFilters{SectorID: &id}
		raws, err := s.repo.ListMerchandise(ctx, filters)
		if err != nil {
			return fmt.Errorf("warm merchandise sector %d: %w", id, err)
		}
		s.cacheSet(ctx, productsCacheKey(filters), NormalizeAll(raws))
	}
	return nil
}

func productsCacheKey(filters ListFilters) string {
	key := productsCachePfx
	if filters.SectorID != nil {
		key += "s" + strconv.FormatInt(*filters.SectorID, 10)
	}
	if filters.Category != nil {
		key += ":c" + string(*filters.Category)
	}
	if filters.Search != "" {
		key += ":q" + filters.Search
	}
	return key
}

func (s *Service) cacheGet(ctx context.Context, key string, target any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("catalog cache read", slog.Any("error", err))
		}
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Warn("catalog cache decode", slog.Any("error", err))
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, catalogCacheTTL).Err(); err != nil {
		s.logger.Warn("catalog cache write", slog.Any("error", err))
	}
}
