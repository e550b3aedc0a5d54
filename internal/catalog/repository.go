package catalog

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

// ListFilters narrows a merchandise listing.
type ListFilters struct {
	SectorID *int64
	Category *Category
	Search   string
}

type Repository interface {
	ListSectors(ctx context.Context) ([]Sector, error)
	ListCombos(ctx context.Context, sectorID int64, systemType, phaseType string) ([]Combo, error)
	ListMerchandise(ctx context.Context, filters ListFilters) ([]RawMerchandise, error)
	GetMerchandise(ctx context.Context, id int64) (*RawMerchandise, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListSectors(ctx context.Context) ([]Sector, error) {
	query := `SELECT id, code, name, COALESCE(image, ''), is_active, created_at
		FROM sectors WHERE is_active ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sectors []Sector
	for rows.Next() {
		var s Sector
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Image, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		sectors = append(sectors, s)
	}
	return sectors, rows.Err()
}

func (r *repository) ListCombos(ctx context.Context, sectorID int64, systemType, phaseType string) ([]Combo, error) {
	query := `SELECT id, sector_id, name, system_type, phase_type, power_kw, product_ids
		FROM combos WHERE sector_id = $1`
	args := []interface{}{sectorID}

	if systemType != "" {
		query += ` AND system_type = $2`
		args = append(args, systemType)
	}
	if phaseType != "" {
		query += ` AND phase_type = $` + strconv.Itoa(len(args)+1)
		args = append(args, phaseType)
	}
	query += ` ORDER BY power_kw`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var combos []Combo
	for rows.Next() {
		var c Combo
		if err := rows.Scan(&c.ID, &c.SectorID, &c.Name, &c.SystemType, &c.PhaseType, &c.PowerKW, &c.ProductIDs); err != nil {
			return nil, err
		}
		combos = append(combos, c)
	}
	return combos, rows.Err()
}

func (r *repository) ListMerchandise(ctx context.Context, filters ListFilters) ([]RawMerchandise, error) {
	query := `SELECT id, name, COALESCE(description, ''), is_active,
		template, price_infos, images, brand, data_json
		FROM merchandise WHERE is_active`
	args := []interface{}{}

	if filters.SectorID != nil {
		args = append(args, *filters.SectorID)
		query += ` AND sector_id = $` + strconv.Itoa(len(args))
	}
	if filters.Category != nil {
		// Category filtering happens on the template code the category maps from.
		clause, codes := categoryCondition(*filters.Category, len(args)+1)
		args = append(args, codes)
		query += ` AND ` + clause
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		query += ` AND name ILIKE $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RawMerchandise
	for rows.Next() {
		item, err := scanMerchandise(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) GetMerchandise(ctx context.Context, id int64) (*RawMerchandise, error) {
	query := `SELECT id, name, COALESCE(description, ''), is_active,
		template, price_infos, images, brand, data_json
		FROM merchandise WHERE id = $1`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, shared.ErrNotFound
	}
	item, err := scanMerchandise(rows)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// scanMerchandise decodes one row including its JSONB blobs. Undecodable
// blobs are dropped rather than failing the row; the normalizer treats the
// resulting nils as absent fields.
func scanMerchandise(rows pgx.Rows) (RawMerchandise, error) {
	var item RawMerchandise
	var template, priceInfos, images, brand, dataJSON []byte
	if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.IsActive,
		&template, &priceInfos, &images, &brand, &dataJSON); err != nil {
		return RawMerchandise{}, err
	}

	decodeJSONB(template, &item.Template)
	decodeJSONB(priceInfos, &item.PriceInfos)
	decodeJSONB(images, &item.Images)
	decodeJSONB(brand, &item.Brand)
	decodeJSONB(dataJSON, &item.DataJSON)
	return item, nil
}

func decodeJSONB[T any](raw []byte, target *T) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, target); err != nil {
		var zero T
		*target = zero
	}
}

// categoryCondition builds the WHERE clause for a category filter. Mapped
// categories match their template codes directly. Accessories carry no code
// of their own, so they are everything the mapped codes do not claim; the
// COALESCE keeps rows with a NULL template on the accessory side.
func categoryCondition(category Category, argNum int) (string, []string) {
	placeholder := `$` + strconv.Itoa(argNum)
	if category == CategoryAccessory {
		return `NOT (COALESCE(template->>'code', '') = ANY(` + placeholder + `))`, mappedTemplateCodes()
	}
	return `COALESCE(template->>'code', '') = ANY(` + placeholder + `)`, templateCodesFor(category)
}

func templateCodesFor(category Category) []string {
	var codes []string
	for code, c := range templateCategories {
		if c == category {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

func mappedTemplateCodes() []string {
	codes := make([]string, 0, len(templateCategories))
	for code := range templateCategories {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

