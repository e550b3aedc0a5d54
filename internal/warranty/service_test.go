package warranty

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunvolt-erp/sunvolt/internal/leads"
)

type stubRepo struct {
	contracts map[string][]Contract
	items     map[int64][]Item
}

func (r *stubRepo) FindContractsByPhone(_ context.Context, phone string) ([]Contract, error) {
	return r.contracts[phone], nil
}

func (r *stubRepo) ListItems(_ context.Context, contractID int64) ([]Item, error) {
	return r.items[contractID], nil
}

func TestLookupCoverageState(t *testing.T) {
	repo := &stubRepo{
		contracts: map[string][]Contract{
			"0912345678": {{ID: 1, ContractNo: "HD-2024-001", CustomerName: "Nguyễn Văn An", CustomerPhone: "0912345678"}},
		},
		items: map[int64][]Item{
			1: {
				{ID: 10, ContractID: 1, ProductName: "Tấm pin 550W", WarrantyYears: 12, ExpiresAt: time.Now().Add(24 * time.Hour)},
				{ID: 11, ContractID: 1, ProductName: "Biến tần 5kW", WarrantyYears: 5, ExpiresAt: time.Now().Add(-24 * time.Hour)},
			},
		},
	}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	results, err := svc.Lookup(context.Background(), "0912345678")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Coverage, 2)
	assert.True(t, results[0].Coverage[0].Active)
	assert.False(t, results[0].Coverage[1].Active)
}

func TestLookupValidatesPhone(t *testing.T) {
	svc := NewService(&stubRepo{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Lookup(context.Background(), "0912")
	assert.ErrorIs(t, err, leads.ErrPhoneTooShort)

	_, err = svc.Lookup(context.Background(), "09123abc45")
	assert.ErrorIs(t, err, leads.ErrPhoneInvalid)
}

func TestLookupUnknownPhone(t *testing.T) {
	svc := NewService(&stubRepo{contracts: map[string][]Contract{}}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	results, err := svc.Lookup(context.Background(), "0999999999")
	require.NoError(t, err)
	assert.Empty(t, results)
}
