package geo

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	provinces     []Province
	provinceCalls int
}

func (r *stubRepo) ListProvinces(context.Context) ([]Province, error) {
	r.provinceCalls++
	return r.provinces, nil
}

func (r *stubRepo) ListDistricts(context.Context, int64) ([]District, error) {
	return nil, nil
}

func (r *stubRepo) ListWards(context.Context, int64) ([]Ward, error) {
	return nil, nil
}

func TestProvincesCached(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := &stubRepo{provinces: []Province{{ID: 1, Name: "Hà Nội", Code: "HN"}}}
	svc := NewService(repo, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))

	first, err := svc.Provinces(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Provinces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.provinceCalls)
}

func TestProvincesCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := &stubRepo{provinces: []Province{{ID: 1, Name: "Hà Nội", Code: "HN"}}}
	svc := NewService(repo, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Provinces(context.Background())
	require.NoError(t, err)

	mr.FastForward(geoCacheTTL + 1)

	_, err = svc.Provinces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.provinceCalls)
}
