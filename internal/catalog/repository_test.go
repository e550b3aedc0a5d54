package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryConditionMappedCategory(t *testing.T) {
	clause, codes := categoryCondition(CategoryPanel, 2)
	assert.Equal(t, `COALESCE(template->>'code', '') = ANY($2)`, clause)
	assert.Equal(t, []string{"PIN_PV"}, codes)
}

func TestCategoryConditionAccessoryExcludesMappedCodes(t *testing.T) {
	clause, codes := categoryCondition(CategoryAccessory, 1)
	assert.Equal(t, `NOT (COALESCE(template->>'code', '') = ANY($1))`, clause)
	assert.Equal(t, []string{"BATTERY_STORAGE", "INVERTER_DC_AC", "PIN_PV"}, codes)
}

func TestTemplateCodesForAccessoryIsEmpty(t *testing.T) {
	// No template code maps to ACCESSORY directly; the filter must never
	// match against an empty list.
	assert.Empty(t, templateCodesFor(CategoryAccessory))
}
