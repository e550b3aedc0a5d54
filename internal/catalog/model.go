package catalog

import "time"

// Category groups merchandise for quotation display.
type Category string

const (
	CategoryPanel     Category = "PANEL"
	CategoryInverter  Category = "INVERTER"
	CategoryBattery   Category = "BATTERY"
	CategoryAccessory Category = "ACCESSORY"
)

// templateCategories maps backend template codes to display categories.
// Anything active that is not listed here sells as an accessory.
var templateCategories = map[string]Category{
	"PIN_PV":          CategoryPanel,
	"INVERTER_DC_AC":  CategoryInverter,
	"BATTERY_STORAGE": CategoryBattery,
}

// Product is the normalized catalog item handed to the quotation flow.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ImportPrice float64  `json:"import_price"`
	GMRate      float64  `json:"gm_rate"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Specs       []Spec   `json:"specs,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// Spec is a localized label/value pair shown under a product name.
type Spec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Sector is a product brand/line grouping, immutable within a session.
type Sector struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Combo is a suggested product bundle for a system/phase combination.
type Combo struct {
	ID         int64   `json:"id"`
	SectorID   int64   `json:"sector_id"`
	Name       string  `json:"name"`
	SystemType string  `json:"system_type"`
	PhaseType  string  `json:"phase_type"`
	PowerKW    float64 `json:"power_kw"`
	ProductIDs []int64 `json:"product_ids"`
}

// RawMerchandise mirrors the backend merchandise record before normalization.
// Nested structures arrive as JSONB and may be partially or entirely absent.
type RawMerchandise struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsActive    bool           `json:"is_active"`
	Template    *RawTemplate   `json:"template"`
	PriceInfos  []RawPriceInfo `json:"price_infos"`
	Images      []RawImage     `json:"images"`
	Brand       *RawBrand      `json:"brand"`
	DataJSON    []RawDataEntry `json:"data_json"`
}

// RawTemplate carries the merchandise type code and margin rate.
type RawTemplate struct {
	Code string   `json:"code"`
	GM   *float64 `json:"gm"`
}

// RawPriceInfo carries cost figures; only the VAT-inclusive import price is used.
type RawPriceInfo struct {
	ImportPriceIncludeVAT *float64 `json:"import_price_include_vat"`
}

// RawImage is a hosted image reference.
type RawImage struct {
	Link string `json:"link"`
}

// RawBrand provides the fallback image when the record has none of its own.
type RawBrand struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// RawDataEntry is one ordered key/value pair from the data_json blob.
type RawDataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
