package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sunvolt-erp/sunvolt/web"
)

// CompanyInfo fills the document header and footer.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	LogoURL string
}

// PDFExporter renders the quotation document to HTML and converts it through
// Gotenberg.
type PDFExporter struct {
	Endpoint  string
	Client    *http.Client
	Company   CompanyInfo
	templates *template.Template
}

type pdfTemplateData struct {
	Summary        Summary
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	LogoURL        string
}

// NewPDFExporter creates an exporter with parsed templates.
func NewPDFExporter(endpoint string, client *http.Client, company CompanyInfo) (*PDFExporter, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
	}

	tpl, err := template.New("quotation_pdf.html").Funcs(funcMap).ParseFS(
		web.Templates, "templates/reports/quotation_pdf.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse quotation template: %w", err)
	}

	return &PDFExporter{
		Endpoint:  endpoint,
		Client:    client,
		Company:   company,
		templates: tpl,
	}, nil
}

// Render converts an assembled summary to PDF bytes.
func (p *PDFExporter) Render(ctx context.Context, summary Summary) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialized")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	html, err := p.buildHTML(summary)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "quotation.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"paperWidth":   "8.27",
		"paperHeight":  "11.69",
		"marginTop":    "0.4",
		"marginBottom": "0.4",
		"marginLeft":   "0.4",
		"marginRight":  "0.4",
		"waitDelay":    "100",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	return io.ReadAll(resp.Body)
}

// BuildHTML exposes the rendered document for the email job.
func (p *PDFExporter) BuildHTML(summary Summary) (string, error) {
	return p.buildHTML(summary)
}

func (p *PDFExporter) buildHTML(summary Summary) (string, error) {
	if p.templates == nil {
		return "", fmt.Errorf("templates not initialized")
	}

	buf := &bytes.Buffer{}
	data := pdfTemplateData{
		Summary:        summary,
		CompanyName:    p.Company.Name,
		CompanyAddress: p.Company.Address,
		CompanyPhone:   p.Company.Phone,
		CompanyEmail:   p.Company.Email,
		LogoURL:        p.Company.LogoURL,
	}
	if err := p.templates.ExecuteTemplate(buf, "quotation_pdf.html", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
