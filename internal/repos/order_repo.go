package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shinyshoes/internal/domain"
	applog "shinyshoes/internal/log"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// orderRow mirrors the snake_case columns of the orders table.
type orderRow struct {
	ID          int64           `db:"id"`
	CreatedAt   string          `db:"created_at"`
	FirstName   string          `db:"first_name"`
	LastName    string          `db:"last_name"`
	Email       string          `db:"email"`
	Address     string          `db:"address"`
	City        string          `db:"city"`
	ZipCode     string          `db:"zip_code"`
	Items       string          `db:"items"`
	TotalAmount sql.NullFloat64 `db:"total_amount"`
	Status      string          `db:"status"`
}

func toRow(o domain.NewOrder) (orderRow, error) {
	items := o.Items
	if items == nil {
		items = []domain.CartLine{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return orderRow{}, fmt.Errorf("encode order items: %w", err)
	}
	status := o.Status
	if status == "" {
		status = domain.StatusProcessing
	}
	return orderRow{
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		Email:       o.Email,
		Address:     o.Address,
		City:        o.City,
		ZipCode:     o.ZipCode,
		Items:       string(b),
		TotalAmount: sql.NullFloat64{Float64: o.TotalAmount, Valid: true},
		Status:      string(status),
	}, nil
}

func (row orderRow) toDomain() (domain.Order, error) {
	o := domain.Order{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		Address:   row.Address,
		City:      row.City,
		ZipCode:   row.ZipCode,
		Items:     []domain.CartLine{},
		Status:    domain.OrderStatus(row.Status),
	}
	if row.TotalAmount.Valid {
		v := row.TotalAmount.Float64
		o.TotalAmount = &v
	}
	if row.Items != "" {
		if err := json.Unmarshal([]byte(row.Items), &o.Items); err != nil {
			o.Items = []domain.CartLine{}
			return o, fmt.Errorf("decode items of order %d: %w", row.ID, err)
		}
	}
	return o, nil
}

// Create inserts an order and returns the store-assigned id.
func (r *OrderRepo) Create(ctx context.Context, o domain.NewOrder) (int64, error) {
	row, err := toRow(o)
	if err != nil {
		return 0, err
	}
	res, err := r.db.NamedExecContext(ctx, `
	  INSERT INTO orders
	    (first_name, last_name, email, address, city, zip_code, items, total_amount, status)
	  VALUES
	    (:first_name, :last_name, :email, :address, :city, :zip_code, :items, :total_amount, :status)
	`, row)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListNewest returns every order, most recent first. An order whose items
// cannot be decoded is kept with no items so totals still add up.
func (r *OrderRepo) ListNewest(ctx context.Context) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT id, created_at, first_name, last_name, email, address, city, zip_code,
		       items, total_amount, status
		FROM orders
		ORDER BY created_at DESC, id DESC
	`); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			applog.Warn(nil, "orders.items.decode", err, map[string]any{"order_id": row.ID})
		}
		out = append(out, o)
	}
	return out, nil
}
