// Package export assembles the human-readable and printable representations
// of a completed quotation.
package export

import (
	"time"

	"github.com/sunvolt-erp/sunvolt/internal/catalog"
	"github.com/sunvolt-erp/sunvolt/internal/pricing"
	"github.com/sunvolt-erp/sunvolt/internal/quotation"
)

// categoryOrder fixes the display order of product groups.
var categoryOrder = []catalog.Category{
	catalog.CategoryPanel,
	catalog.CategoryInverter,
	catalog.CategoryBattery,
	catalog.CategoryAccessory,
}

var categoryTitles = map[catalog.Category]string{
	catalog.CategoryPanel:     "Tấm pin",
	catalog.CategoryInverter:  "Biến tần",
	catalog.CategoryBattery:   "Pin lưu trữ",
	catalog.CategoryAccessory: "Phụ kiện",
}

var installationLabels = map[quotation.InstallationType]string{
	quotation.InstallRooftop: "Áp mái",
	quotation.InstallFrame:   "Khung sắt",
}

// Summary is the assembled quotation view used by the success screen and
// the PDF document.
type Summary struct {
	DocNumber     string             `json:"doc_number"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Groups        []CategoryGroup    `json:"groups"`
	Installation  *InstallationLine  `json:"installation,omitempty"`
	TotalAmount   float64            `json:"total_amount"`
	TotalDisplay  string             `json:"total_display"`
}

// CategoryGroup is one product category table.
type CategoryGroup struct {
	Category catalog.Category `json:"category"`
	Title    string           `json:"title"`
	Lines    []SummaryLine    `json:"lines"`
}

// SummaryLine is one product row with formatted amounts.
type SummaryLine struct {
	ProductName      string  `json:"product_name"`
	UnitPrice        float64 `json:"unit_price"`
	UnitPriceDisplay string  `json:"unit_price_display"`
	Quantity         int     `json:"quantity"`
	LineTotal        float64 `json:"line_total"`
	LineTotalDisplay string  `json:"line_total_display"`
}

// InstallationLine carries the installation type and, for frame installs,
// the custom frame pricing.
type InstallationLine struct {
	Type              quotation.InstallationType `json:"type"`
	Label             string                     `json:"label"`
	FrameSellDisplay  string                     `json:"frame_sell_display,omitempty"`
	FrameLaborDisplay string                     `json:"frame_labor_display,omitempty"`
}

// Assemble builds the summary for a persisted quotation. No validation
// happens here: an empty quotation exports with no groups and the literal
// placeholder as its total.
func Assemble(q *quotation.Quotation) Summary {
	summary := Summary{
		DocNumber:     q.DocNumber,
		CustomerName:  q.CustomerName,
		CustomerPhone: q.CustomerPhone,
		CreatedAt:     q.CreatedAt,
		TotalAmount:   q.TotalAmount,
		TotalDisplay:  pricing.FormatTotal(q.TotalAmount),
	}

	byCategory := make(map[catalog.Category][]SummaryLine)
	for _, line := range q.Lines {
		category := line.Category
		if category == "" {
			category = catalog.CategoryAccessory
		}
		byCategory[category] = append(byCategory[category], SummaryLine{
			ProductName:      line.ProductName,
			UnitPrice:        line.UnitPrice,
			UnitPriceDisplay: pricing.FormatVND(line.UnitPrice),
			Quantity:         line.Quantity,
			LineTotal:        line.LineTotal,
			LineTotalDisplay: pricing.FormatVND(line.LineTotal),
		})
	}

	for _, category := range categoryOrder {
		lines := byCategory[category]
		if len(lines) == 0 {
			continue
		}
		summary.Groups = append(summary.Groups, CategoryGroup{
			Category: category,
			Title:    categoryTitles[category],
			Lines:    lines,
		})
	}

	if q.InstallationType != "" {
		installation := &InstallationLine{
			Type:  q.InstallationType,
			Label: installationLabels[q.InstallationType],
		}
		if q.InstallationType == quotation.InstallFrame {
			installation.FrameSellDisplay = pricing.FormatVND(q.FrameSellPrice)
			installation.FrameLaborDisplay = pricing.FormatVND(q.FrameLaborPrice)
		}
		summary.Installation = installation
	}

	return summary
}
