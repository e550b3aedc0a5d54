package leads

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

type Repository interface {
	Create(ctx context.Context, lead Lead) (int64, error)
	Get(ctx context.Context, id int64) (*Lead, error)
	ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]Lead, int, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, lead Lead) (int64, error) {
	query := `INSERT INTO leads
		(agent_id, full_name, phone, email, province_id, district_id, ward_id, address, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		lead.AgentID, lead.FullName, lead.Phone, nullable(lead.Email),
		nullableID(lead.ProvinceID), nullableID(lead.DistrictID), nullableID(lead.WardID),
		nullable(lead.Address), nullable(lead.Notes),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, httpx.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Lead, error) {
	query := `SELECT id, agent_id, full_name, phone, COALESCE(email, ''),
		COALESCE(province_id, 0), COALESCE(district_id, 0), COALESCE(ward_id, 0),
		COALESCE(address, ''), COALESCE(notes, ''), created_at
		FROM leads WHERE id = $1`

	var lead Lead
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lead.ID, &lead.AgentID, &lead.FullName, &lead.Phone, &lead.Email,
		&lead.ProvinceID, &lead.DistrictID, &lead.WardID,
		&lead.Address, &lead.Notes, &lead.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}

func (r *repository) ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]Lead, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE agent_id = $1`, agentID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, agent_id, full_name, phone, COALESCE(email, ''),
		COALESCE(province_id, 0), COALESCE(district_id, 0), COALESCE(ward_id, 0),
		COALESCE(address, ''), COALESCE(notes, ''), created_at
		FROM leads WHERE agent_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Lead
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(
			&lead.ID, &lead.AgentID, &lead.FullName, &lead.Phone, &lead.Email,
			&lead.ProvinceID, &lead.DistrictID, &lead.WardID,
			&lead.Address, &lead.Notes, &lead.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, lead)
	}
	return result, total, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
