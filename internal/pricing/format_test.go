package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVND(t *testing.T) {
	// Vietnamese locale groups thousands with a dot.
	assert.Equal(t, "125.000 đ", FormatVND(125_000))
	assert.Equal(t, "1.250.000 đ", FormatVND(1_250_000))
	assert.Equal(t, "0 đ", FormatVND(0))
}

func TestFormatTotalPlaceholder(t *testing.T) {
	assert.Equal(t, "-", FormatTotal(0))
	assert.Equal(t, "125.000 đ", FormatTotal(125_000))
}
