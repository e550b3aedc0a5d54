package warranty

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	FindContractsByPhone(ctx context.Context, phone string) ([]Contract, error)
	ListItems(ctx context.Context, contractID int64) ([]Item, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) FindContractsByPhone(ctx context.Context, phone string) ([]Contract, error) {
	query := `SELECT id, contract_no, customer_name, customer_phone, signed_at
		FROM contracts WHERE customer_phone = $1
		ORDER BY signed_at DESC`

	rows, err := r.db.Query(ctx, query, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Contract
	for rows.Next() {
		var c Contract
		if err := rows.Scan(&c.ID, &c.ContractNo, &c.CustomerName, &c.CustomerPhone, &c.SignedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) ListItems(ctx context.Context, contractID int64) ([]Item, error) {
	query := `SELECT id, contract_id, product_name, COALESCE(serial_no, ''),
		warranty_years, expires_at
		FROM contract_items WHERE contract_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(&i.ID, &i.ContractID, &i.ProductName, &i.SerialNo, &i.WarrantyYears, &i.ExpiresAt); err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	return result, rows.Err()
}
