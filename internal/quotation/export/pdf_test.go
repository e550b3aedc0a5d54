package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunvolt-erp/sunvolt/internal/catalog"
	"github.com/sunvolt-erp/sunvolt/internal/quotation"
)

func testCompany() CompanyInfo {
	return CompanyInfo{
		Name:    "Sunvolt JSC",
		Address: "12 Nguyễn Trãi, Hà Nội",
		Phone:   "1900 1234",
		Email:   "sales@sunvolt.vn",
		LogoURL: "https://cdn.sunvolt.vn/logo.png",
	}
}

func sampleSummary() Summary {
	return Assemble(&quotation.Quotation{
		DocNumber:        "BG-2608-0001",
		CustomerName:     "Nguyễn Văn A",
		InstallationType: quotation.InstallFrame,
		FrameSellPrice:   5_000_000,
		FrameLaborPrice:  2_000_000,
		TotalAmount:      375_000,
		CreatedAt:        time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		Lines: []quotation.QuotationLine{
			{ProductName: "Tấm pin 550W", Category: catalog.CategoryPanel, UnitPrice: 125_000, Quantity: 3, LineTotal: 375_000},
		},
	})
}

func TestBuildHTML(t *testing.T) {
	exporter, err := NewPDFExporter("http://gotenberg.local", nil, testCompany())
	require.NoError(t, err)

	html, err := exporter.BuildHTML(sampleSummary())
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Báo giá BG-2608-0001</title>")
	assert.Contains(t, html, "Tấm pin 550W")
	assert.Contains(t, html, "Khung sắt")
	assert.Contains(t, html, "375.000 đ")
	assert.Contains(t, html, "sales@sunvolt.vn")
	assert.Contains(t, html, "https://cdn.sunvolt.vn/logo.png")
}

func TestBuildHTMLEmptyQuotationShowsPlaceholder(t *testing.T) {
	exporter, err := NewPDFExporter("http://gotenberg.local", nil, testCompany())
	require.NoError(t, err)

	html, err := exporter.BuildHTML(Assemble(&quotation.Quotation{DocNumber: "BG-2608-0002"}))
	require.NoError(t, err)
	assert.Contains(t, html, "TỔNG CỘNG: -")
}

func TestRenderPostsToGotenberg(t *testing.T) {
	var gotPath, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer server.Close()

	exporter, err := NewPDFExporter(server.URL, server.Client(), testCompany())
	require.NoError(t, err)

	pdf, err := exporter.Render(context.Background(), sampleSummary())
	require.NoError(t, err)
	assert.Equal(t, "/forms/chromium/convert/html", gotPath)
	assert.Contains(t, gotContentType, "multipart/form-data")
	assert.Contains(t, string(pdf), "%PDF")
}

func TestRenderSurfacesGotenbergErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conversion failed", http.StatusInternalServerError)
	}))
	defer server.Close()

	exporter, err := NewPDFExporter(server.URL, server.Client(), testCompany())
	require.NoError(t, err)

	_, err = exporter.Render(context.Background(), sampleSummary())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gotenberg response 500")
}
