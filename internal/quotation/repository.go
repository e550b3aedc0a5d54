package quotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sunvolt-erp/sunvolt/internal/platform/db"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Create(ctx context.Context, q Quotation) (int64, error)
	InsertLine(ctx context.Context, line QuotationLine) (int64, error)
	Get(ctx context.Context, id int64) (*Quotation, error)
	List(ctx context.Context, agentID int64, limit, offset int) ([]Quotation, int, error)
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
}

type repository struct {
	db   pgxQuerier
	pool *pgxpool.Pool
}

type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Create(ctx context.Context, q Quotation) (int64, error) {
	query := `INSERT INTO quotations
		(doc_number, agent_id, customer_name, customer_phone, sector_id,
		 system_type, phase_type, installation_type,
		 frame_sell_price, frame_labor_price, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		q.DocNumber, q.AgentID, q.CustomerName, q.CustomerPhone, q.SectorID,
		q.SystemType, q.PhaseType, q.InstallationType,
		q.FrameSellPrice, q.FrameLaborPrice, q.TotalAmount, q.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) InsertLine(ctx context.Context, line QuotationLine) (int64, error) {
	query := `INSERT INTO quotation_lines
		(quotation_id, product_id, product_name, category, unit_price, quantity, line_total, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		line.QuotationID, line.ProductID, line.ProductName, line.Category,
		line.UnitPrice, line.Quantity, line.LineTotal, line.LineOrder,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Quotation, error) {
	query := `SELECT id, doc_number, agent_id, COALESCE(customer_name, ''),
		COALESCE(customer_phone, ''), sector_id, system_type, phase_type,
		installation_type, frame_sell_price, frame_labor_price, total_amount, created_at
		FROM quotations WHERE id = $1`

	var q Quotation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.DocNumber, &q.AgentID, &q.CustomerName,
		&q.CustomerPhone, &q.SectorID, &q.SystemType, &q.PhaseType,
		&q.InstallationType, &q.FrameSellPrice, &q.FrameLaborPrice, &q.TotalAmount, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Lines = lines
	return &q, nil
}

func (r *repository) List(ctx context.Context, agentID int64, limit, offset int) ([]Quotation, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM quotations WHERE agent_id = $1`, agentID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, doc_number, agent_id, COALESCE(customer_name, ''),
		COALESCE(customer_phone, ''), sector_id, system_type, phase_type,
		installation_type, frame_sell_price, frame_labor_price, total_amount, created_at
		FROM quotations WHERE agent_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotations []Quotation
	for rows.Next() {
		var q Quotation
		if err := rows.Scan(
			&q.ID, &q.DocNumber, &q.AgentID, &q.CustomerName,
			&q.CustomerPhone, &q.SectorID, &q.SystemType, &q.PhaseType,
			&q.InstallationType, &q.FrameSellPrice, &q.FrameLaborPrice, &q.TotalAmount, &q.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		quotations = append(quotations, q)
	}
	return quotations, total, rows.Err()
}

// GenerateNumber allocates BG-{YYMM}-{SEQ} via an upsert on the per-period
// sequence row.
func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	var seq int64
	period := date.Format("200601")
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "BG", period).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BG-%s-%04d", date.Format("0601"), seq), nil
}

func (r *repository) lines(ctx context.Context, quotationID int64) ([]QuotationLine, error) {
	query := `SELECT id, quotation_id, product_id, product_name, category,
		unit_price, quantity, line_total, line_order
		FROM quotation_lines WHERE quotation_id = $1 ORDER BY line_order`

	rows, err := r.db.Query(ctx, query, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []QuotationLine
	for rows.Next() {
		var line QuotationLine
		if err := rows.Scan(
			&line.ID, &line.QuotationID, &line.ProductID, &line.ProductName, &line.Category,
			&line.UnitPrice, &line.Quantity, &line.LineTotal, &line.LineOrder,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
