package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mnzmnz10/yeter-sub001/internal/platform/db"
)

var ErrNotFound = errors.New("catalog: item not found")

type Repository interface {
	List(ctx context.Context, q Query) ([]Item, int, error)
	Get(ctx context.Context, id int64) (Item, error)
	ReplaceCompanyItems(ctx context.Context, companyID int64, items []Item) (int, error)
	DeleteCompanyItems(ctx context.Context, companyID int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const itemColumns = `id, company_id, category_id, name, list_price, discounted_price, currency, created_at, updated_at`

func (r *repository) List(ctx context.Context, q Query) ([]Item, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if q.CompanyID != nil {
		argCount++
		where += ` AND company_id = $` + strconv.Itoa(argCount)
		args = append(args, *q.CompanyID)
	}
	if q.CategoryID != nil {
		argCount++
		where += ` AND category_id = $` + strconv.Itoa(argCount)
		args = append(args, *q.CategoryID)
	}
	if q.Search != "" {
		argCount++
		where += ` AND name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM catalog_items`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Name is not unique across suppliers; the id tiebreak keeps page
	// boundaries stable while the operator loads more.
	query := `SELECT ` + itemColumns + ` FROM catalog_items` + where + ` ORDER BY name ASC, id ASC`

	if q.PageSize > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, q.PageSize)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (q.Page - 1) * q.PageSize
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.CategoryID, &it.Name, &it.ListPrice, &it.DiscountedPrice, &it.Currency, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Item, error) {
	var it Item
	err := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM catalog_items WHERE id = $1`, id).
		Scan(&it.ID, &it.CompanyID, &it.CategoryID, &it.Name, &it.ListPrice, &it.DiscountedPrice, &it.Currency, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return it, err
}

// ReplaceCompanyItems swaps a supplier's whole list in one transaction, so a
// half-imported price list is never visible.
func (r *repository) ReplaceCompanyItems(ctx context.Context, companyID int64, items []Item) (int, error) {
	inserted := 0
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM catalog_items WHERE company_id = $1`, companyID); err != nil {
			return err
		}
		now := time.Now()
		for _, it := range items {
			_, err := tx.Exec(ctx, `
				INSERT INTO catalog_items (company_id, category_id, name, list_price, discounted_price, currency, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, companyID, it.CategoryID, it.Name, it.ListPrice, it.DiscountedPrice, it.Currency, now, now)
			if err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *repository) DeleteCompanyItems(ctx context.Context, companyID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM catalog_items WHERE company_id = $1`, companyID)
	return err
}
