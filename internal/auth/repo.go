package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

type Repository interface {
	FindByPhone(ctx context.Context, phone string) (*Agent, error)
	FindByID(ctx context.Context, id int64) (*Agent, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL string) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const agentColumns = `id, phone, full_name, password_hash, role, COALESCE(avatar_url, ''), is_active, created_at, updated_at`

func (r *repository) FindByPhone(ctx context.Context, phone string) (*Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE phone = $1`
	return r.scanAgent(r.db.QueryRow(ctx, query, phone))
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`
	return r.scanAgent(r.db.QueryRow(ctx, query, id))
}

func (r *repository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM agents WHERE phone = $1)`, phone).Scan(&exists)
	return exists, err
}

func (r *repository) UpdateAvatar(ctx context.Context, id int64, avatarURL string) error {
	_, err := r.db.Exec(ctx, `UPDATE agents SET avatar_url = $1, updated_at = NOW() WHERE id = $2`, avatarURL, id)
	return err
}

func (r *repository) scanAgent(row pgx.Row) (*Agent, error) {
	var a Agent
	err := row.Scan(&a.ID, &a.Phone, &a.FullName, &a.PasswordHash, &a.Role,
		&a.AvatarURL, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
