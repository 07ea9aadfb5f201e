package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, o *Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("order: marshal items: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (
			id, call_id, customer_name, phone_number, address,
			items, pickup_time, order_type,
			subtotal, tax, total, confirmed, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (call_id) DO UPDATE SET
			customer_name = EXCLUDED.customer_name,
			phone_number  = EXCLUDED.phone_number,
			address       = EXCLUDED.address,
			items         = EXCLUDED.items,
			pickup_time   = EXCLUDED.pickup_time,
			order_type    = EXCLUDED.order_type,
			subtotal      = EXCLUDED.subtotal,
			tax           = EXCLUDED.tax,
			total         = EXCLUDED.total,
			confirmed     = EXCLUDED.confirmed
	`,
		o.ID, o.CallID, o.CustomerName, o.Phone, o.Address,
		itemsJSON, o.PickupTime, o.OrderType,
		o.Subtotal, o.Tax, o.Total, o.Confirmed, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("order: insert: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByCallID(ctx context.Context, callID string) (*Order, error) {
	var o Order
	var itemsJSON []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, call_id, customer_name, phone_number, address,
		       items, pickup_time, order_type,
		       subtotal, tax, total, confirmed, created_at
		FROM orders
		WHERE call_id = $1
	`, callID).Scan(
		&o.ID, &o.CallID, &o.CustomerName, &o.Phone, &o.Address,
		&itemsJSON, &o.PickupTime, &o.OrderType,
		&o.Subtotal, &o.Tax, &o.Total, &o.Confirmed, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("order: query: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("order: decode items: %w", err)
	}
	return &o, nil
}
