package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Administrative units change rarely, so the cache window is generous.
const geoCacheTTL = 12 * time.Hour

// Service serves the administrative-unit hierarchy with a Redis read-through
// cache in front of Postgres.
type Service struct {
	repo   Repository
	cache  *redis.Client
	logger *slog.Logger
}

func NewService(repo Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

func (s *Service) Provinces(ctx context.Context) ([]Province, error) {
	var provinces []Province
	if s.cacheGet(ctx, "geo:provinces", &provinces) {
		return provinces, nil
	}
	provinces, err := s.repo.ListProvinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	s.cacheSet(ctx, "geo:provinces", provinces)
	return provinces, nil
}

func (s *Service) Districts(ctx context.Context, provinceID int64) ([]District, error) {
	key := "geo:districts:" + strconv.FormatInt(provinceID, 10)
	var districts []District
	if s.cacheGet(ctx, key, &districts) {
		return districts, nil
	}
	districts, err := s.repo.ListDistricts(ctx, provinceID)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	s.cacheSet(ctx, key, districts)
	return districts, nil
}

func (s *Service) Wards(ctx context.Context, districtID int64) ([]Ward, error) {
	key := "geo:wards:" + strconv.FormatInt(districtID, 10)
	var wards []Ward
	if s.cacheGet(ctx, key, &wards) {
		return wards, nil
	}
	wards, err := s.repo.ListWards(ctx, districtID)
	if err != nil {
		return nil, fmt.Errorf("list wards: %w", err)
	}
	s.cacheSet(ctx, key, wards)
	return wards, nil
}

func (s *Service) cacheGet(ctx context.Context, key string, target any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("geo cache read", slog.Any("error", err))
		}
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Warn("geo cache decode", slog.Any("error", err))
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
	if err := s.cache.Set(ctx, key, data, geoCacheTTL).Err(); err != nil {
		s.logger.Warn("geo cache write", slog.Any("error", err))
	}
}
