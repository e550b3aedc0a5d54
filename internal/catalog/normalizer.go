package catalog

import "github.com/sunvolt-erp/sunvolt/internal/pricing"

// specLabels localizes known data_json keys for display. Unknown keys pass
// through unchanged.
var specLabels = map[string]string{
	"power_watt":    "Công suất",
	"capacity_kwh":  "Dung lượng",
	"phase":         "Số pha",
	"voltage":       "Điện áp",
	"efficiency":    "Hiệu suất",
	"warranty_year": "Bảo hành",
}

// maxDisplaySpecs limits how many data_json entries surface on product cards.
const maxDisplaySpecs = 2

// Normalize converts a raw merchandise record into a Product. The transform
// is pure and total: every missing or malformed nested field degrades to a
// safe default rather than failing.
func Normalize(raw RawMerchandise) Product {
	importPrice := 0.0
	if len(raw.PriceInfos) > 0 && raw.PriceInfos[0].ImportPriceIncludeVAT != nil {
		importPrice = *raw.PriceInfos[0].ImportPriceIncludeVAT
	}

	gmRate := float64(pricing.DefaultGMRate)
	if raw.Template != nil && raw.Template.GM != nil {
		gmRate = pricing.ClampGMRate(*raw.Template.GM)
	}

	return Product{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		ImportPrice: importPrice,
		GMRate:      gmRate,
		Price:       pricing.RoundToThousand(pricing.SellingPrice(importPrice, gmRate)),
		Category:    categoryOf(raw.Template),
		Specs:       displaySpecs(raw.DataJSON),
		Image:       imageOf(raw),
	}
}

// NormalizeAll maps a raw listing, keeping backend order.
func NormalizeAll(raws []RawMerchandise) []Product {
	products := make([]Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, Normalize(raw))
	}
	return products
}

func categoryOf(template *RawTemplate) Category {
	if template == nil {
		return CategoryAccessory
	}
	if category, ok := templateCategories[template.Code]; ok {
		return category
	}
	return CategoryAccessory
}

func displaySpecs(entries []RawDataEntry) []Spec {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) > maxDisplaySpecs {
		entries = entries[:maxDisplaySpecs]
	}
	specs := make([]Spec, 0, len(entries))
	for _, entry := range entries {
		label := entry.Key
		if localized, ok := specLabels[entry.Key]; ok {
			label = localized
		}
		specs = append(specs, Spec{Label: label, Value: entry.Value})
	}
	return specs
}

func imageOf(raw RawMerchandise) string {
	if len(raw.Images) > 0 && raw.Images[0].Link != "" {
		return raw.Images[0].Link
	}
	if raw.Brand != nil {
		return raw.Brand.Image
	}
	return ""
}
