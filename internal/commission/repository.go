package commission

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]Entry, int, error)
	MonthlyStats(ctx context.Context, agentID int64, months int) ([]MonthlyStat, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]Entry, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM commissions WHERE agent_id = $1`, agentID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT c.id, c.agent_id, c.quotation_id, q.doc_number, q.customer_name,
		c.base_amount, c.rate, c.amount, c.status, c.created_at
		FROM commissions c
		JOIN quotations q ON q.id = c.quotation_id
		WHERE c.agent_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.AgentID, &e.QuotationID, &e.DocumentNo, &e.CustomerName,
			&e.BaseAmount, &e.Rate, &e.Amount, &e.Status, &e.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, e)
	}
	return result, total, rows.Err()
}

func (r *repository) MonthlyStats(ctx context.Context, agentID int64, months int) ([]MonthlyStat, error) {
	query := `SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS period,
		COUNT(*),
		COALESCE(SUM(amount), 0),
		COALESCE(SUM(amount) FILTER (WHERE status = 'PAID'), 0)
		FROM commissions
		WHERE agent_id = $1
		  AND created_at >= date_trunc('month', NOW()) - make_interval(months => $2 - 1)
		GROUP BY period
		ORDER BY period DESC`

	rows, err := r.db.Query(ctx, query, agentID, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MonthlyStat
	for rows.Next() {
		var s MonthlyStat
		if err := rows.Scan(&s.Period, &s.Quotations, &s.TotalAmount, &s.PaidAmount); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
