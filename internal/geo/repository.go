package geo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListProvinces(ctx context.Context) ([]Province, error)
	ListDistricts(ctx context.Context, provinceID int64) ([]District, error)
	ListWards(ctx context.Context, districtID int64) ([]Ward, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListProvinces(ctx context.Context) ([]Province, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(code, '') FROM provinces ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Province
	for rows.Next() {
		var p Province
		if err := rows.Scan(&p.ID, &p.Name, &p.Code); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *repository) ListDistricts(ctx context.Context, provinceID int64) ([]District, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, province_id, name FROM districts WHERE province_id = $1 ORDER BY name`,
		provinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []District
	for rows.Next() {
		var d District
		if err := rows.Scan(&d.ID, &d.ProvinceID, &d.Name); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *repository) ListWards(ctx context.Context, districtID int64) ([]Ward, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, district_id, name FROM wards WHERE district_id = $1 ORDER BY name`,
		districtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Ward
	for rows.Next() {
		var w Ward
		if err := rows.Scan(&w.ID, &w.DistrictID, &w.Name); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	return result, rows.Err()
}
