package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mnzmnz10/yeter-sub001/internal/platform/db"
)

var ErrNotFound = errors.New("quote: not found")

// ListRequest filters and pages the quote list.
type ListRequest struct {
	Search string
	Limit  int
	Offset int
}

// Summary is the list-view projection of a quote.
type Summary struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	TotalNetPrice float64   `json:"total_net_price"`
	TotalQuantity int       `json:"total_quantity"`
	ProductCount  int       `json:"product_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Create(ctx context.Context, q Quote) (int64, error)
	Update(ctx context.Context, q Quote) error
	InsertLine(ctx context.Context, line Line) (int64, error)
	DeleteLines(ctx context.Context, quoteID int64) error
	Get(ctx context.Context, id int64) (*Quote, error)
	List(ctx context.Context, req ListRequest) ([]Summary, int, error)
	Delete(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Create(ctx context.Context, q Quote) (int64, error) {
	var id int64
	now := time.Now()
	err := r.db.QueryRow(ctx, `
		INSERT INTO quotes (name, discount_percent, labor_cost, price_mode, notes,
		                    total_list_price, discount_amount, total_net_price,
		                    total_quantity, product_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, q.Name, q.DiscountPercent, q.LaborCost, q.PriceMode, q.Notes,
		q.Totals.TotalListPrice, q.Totals.DiscountAmount, q.Totals.TotalNetPrice,
		q.Totals.TotalQuantity, q.Totals.ProductCount, now, now).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, q Quote) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE quotes
		SET name = $1, discount_percent = $2, labor_cost = $3, price_mode = $4,
		    notes = $5, total_list_price = $6, discount_amount = $7,
		    total_net_price = $8, total_quantity = $9, product_count = $10,
		    updated_at = $11
		WHERE id = $12
	`, q.Name, q.DiscountPercent, q.LaborCost, q.PriceMode, q.Notes,
		q.Totals.TotalListPrice, q.Totals.DiscountAmount, q.Totals.TotalNetPrice,
		q.Totals.TotalQuantity, q.Totals.ProductCount, time.Now(), q.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) InsertLine(ctx context.Context, line Line) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO quote_lines (quote_id, item_id, quantity, name, company_id,
		                         category_id, list_price, discounted_price, currency,
		                         unit_price_base, line_total_base, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, line.QuoteID, line.ItemID, line.Quantity, line.Name, line.CompanyID,
		line.CategoryID, line.ListPrice, line.DiscountedPrice, line.Currency,
		line.UnitPriceBase, line.LineTotalBase, line.LineOrder).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) DeleteLines(ctx context.Context, quoteID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM quote_lines WHERE quote_id = $1`, quoteID)
	return err
}

func (r *repository) Get(ctx context.Context, id int64) (*Quote, error) {
	var q Quote
	err := r.db.QueryRow(ctx, `
		SELECT id, name, discount_percent, labor_cost, price_mode, notes,
		       total_list_price, discount_amount, total_net_price,
		       total_quantity, product_count, created_at, updated_at
		FROM quotes WHERE id = $1
	`, id).Scan(&q.ID, &q.Name, &q.DiscountPercent, &q.LaborCost, &q.PriceMode, &q.Notes,
		&q.Totals.TotalListPrice, &q.Totals.DiscountAmount, &q.Totals.TotalNetPrice,
		&q.Totals.TotalQuantity, &q.Totals.ProductCount, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	q.Totals.LaborCost = q.LaborCost

	rows, err := r.db.Query(ctx, `
		SELECT id, quote_id, item_id, quantity, name, company_id, category_id,
		       list_price, discounted_price, currency, unit_price_base,
		       line_total_base, line_order
		FROM quote_lines WHERE quote_id = $1 ORDER BY line_order ASC, id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.QuoteID, &l.ItemID, &l.Quantity, &l.Name, &l.CompanyID,
			&l.CategoryID, &l.ListPrice, &l.DiscountedPrice, &l.Currency,
			&l.UnitPriceBase, &l.LineTotalBase, &l.LineOrder); err != nil {
			return nil, err
		}
		q.Lines = append(q.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) List(ctx context.Context, req ListRequest) ([]Summary, int, error) {
	where := ""
	args := []interface{}{}
	argPos := 1

	if req.Search != "" {
		where = fmt.Sprintf(" WHERE name ILIKE $%d", argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM quotes"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, total_net_price, total_quantity, product_count, created_at, updated_at
		FROM quotes%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.TotalNetPrice, &s.TotalQuantity, &s.ProductCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, s)
	}
	return summaries, total, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
