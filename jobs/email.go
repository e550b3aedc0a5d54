package jobs

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/hibiken/asynq"

	"github.com/sunvolt-erp/sunvolt/internal/quotation"
	"github.com/sunvolt-erp/sunvolt/internal/quotation/export"
)

// SMTPConfig carries the outbound mail settings.
type SMTPConfig struct {
	Host string
	Port int
	From string
}

// sendMail is swapped out in tests.
var sendMail = smtp.SendMail

// QuotationMailer renders a quotation PDF and delivers it by email.
type QuotationMailer struct {
	repo     quotation.Repository
	exporter *export.PDFExporter
	smtp     SMTPConfig
	logger   *slog.Logger
}

func NewQuotationMailer(repo quotation.Repository, exporter *export.PDFExporter, smtp SMTPConfig, logger *slog.Logger) *QuotationMailer {
	return &QuotationMailer{repo: repo, exporter: exporter, smtp: smtp, logger: logger}
}

// HandleQuotationEmail processes TaskTypeQuotationEmail tasks.
func (m *QuotationMailer) HandleQuotationEmail(ctx context.Context, t *asynq.Task) error {
	var payload QuotationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	q, err := m.repo.Get(ctx, payload.QuotationID)
	if err != nil {
		return fmt.Errorf("load quotation %d: %w", payload.QuotationID, err)
	}

	summary := export.Assemble(q)
	pdf, err := m.exporter.Render(ctx, summary)
	if err != nil {
		return fmt.Errorf("render quotation %d: %w", payload.QuotationID, err)
	}

	subject := "Báo giá " + q.DocNumber
	body := "Kính gửi quý khách,\r\n\r\nSunvolt gửi quý khách báo giá " + q.DocNumber +
		" trong tệp đính kèm.\r\n\r\nTrân trọng."
	msg := buildMessage(m.smtp.From, payload.Recipient, subject, body, q.DocNumber+".pdf", pdf)

	addr := fmt.Sprintf("%s:%d", m.smtp.Host, m.smtp.Port)
	if err := sendMail(addr, nil, m.smtp.From, []string{payload.Recipient}, msg); err != nil {
		return fmt.Errorf("send quotation %d: %w", payload.QuotationID, err)
	}

	m.logger.Info("quotation emailed",
		slog.Int64("quotation_id", payload.QuotationID),
		slog.String("recipient", payload.Recipient))
	return nil
}

func buildMessage(from, to, subject, body, filename string, attachment []byte) []byte {
	const boundary = "sunvolt-mail-boundary"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: application/pdf\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", filename)

	encoded := base64.StdEncoding.EncodeToString(attachment)
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	fmt.Fprintf(&buf, "\r\n--%s--\r\n", boundary)

	return buf.Bytes()
}
