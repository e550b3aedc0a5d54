package commission

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	lastMonths int
	stats      []MonthlyStat
	entries    []Entry
}

func (r *stubRepo) ListByAgent(_ context.Context, _ int64, limit, offset int) ([]Entry, int, error) {
	total := len(r.entries)
	if offset >= total {
		return nil, total, nil
	}
	out := r.entries[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *stubRepo) MonthlyStats(_ context.Context, _ int64, months int) ([]MonthlyStat, error) {
	r.lastMonths = months
	return r.stats, nil
}

func newTestService(repo *stubRepo) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStatsClampsWindow(t *testing.T) {
	repo := &stubRepo{stats: []MonthlyStat{{Period: "2026-08", Quotations: 3, TotalAmount: 4_500_000}}}
	svc := newTestService(repo)

	cases := []struct {
		name   string
		months int
		want   int
	}{
		{"zero falls back", 0, defaultStatsMonths},
		{"negative falls back", -3, defaultStatsMonths},
		{"too large falls back", 36, defaultStatsMonths},
		{"in range kept", 12, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Stats(context.Background(), 1, tc.months)
			require.NoError(t, err)
			assert.Equal(t, tc.want, repo.lastMonths)
		})
	}
}

func TestHistoryPaging(t *testing.T) {
	repo := &stubRepo{entries: []Entry{
		{ID: 3, Amount: 1_000_000}, {ID: 2, Amount: 750_000}, {ID: 1, Amount: 500_000},
	}}
	svc := newTestService(repo)

	entries, total, err := svc.History(context.Background(), 1, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].ID)
}
