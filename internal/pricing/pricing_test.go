package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSellingPrice(t *testing.T) {
	tests := []struct {
		name        string
		importPrice float64
		gmRate      float64
		want        float64
	}{
		{"zero margin keeps import price", 100_000, 0, 100_000},
		{"twenty percent margin", 100_000, 20, 125_000},
		{"ten percent default margin", 90_000, 10, 100_000},
		{"zero import price", 0, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SellingPrice(tt.importPrice, tt.gmRate), 0.001)
		})
	}
}

func TestSellingPriceNeverBelowImport(t *testing.T) {
	for _, importPrice := range []float64{0, 1, 999, 100_000, 12_345_678} {
		for _, gm := range []float64{0, 5, 10, 20, 50, 99} {
			got := SellingPrice(importPrice, gm)
			assert.GreaterOrEqual(t, got, importPrice,
				"import=%v gm=%v", importPrice, gm)
		}
	}
}

func TestRoundToThousand(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{125_000, 125_000},
		{125_499, 125_000},
		{125_500, 126_000},
		{999, 1_000},
		{499, 0},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundToThousand(tt.in))
	}
}

func TestRoundToThousandIdempotent(t *testing.T) {
	for _, x := range []float64{0, 499, 500, 1_234, 125_500, 9_999_999} {
		once := RoundToThousand(x)
		assert.Equal(t, once, RoundToThousand(once))
	}
}

func TestClampGMRate(t *testing.T) {
	assert.Equal(t, 20.0, ClampGMRate(20))
	assert.Equal(t, 0.0, ClampGMRate(0))
	assert.Equal(t, float64(DefaultGMRate), ClampGMRate(100))
	assert.Equal(t, float64(DefaultGMRate), ClampGMRate(150))
	assert.Equal(t, float64(DefaultGMRate), ClampGMRate(-5))
}

func TestMarginExample(t *testing.T) {
	// 100,000 import at 20% margin sells for exactly 125,000.
	price := RoundToThousand(SellingPrice(100_000, 20))
	assert.Equal(t, 125_000.0, price)
}
