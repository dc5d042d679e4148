package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

const orderColumns = `id, buyer_id, farmer_id, total::text, status, payment_status, shipping_address, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const insertOrder = `INSERT INTO orders (buyer_id, farmer_id, total, status, payment_status, shipping_address)
                         VALUES ($1, $2, $3::text::numeric, $4, $5, $6)
                         RETURNING id, created_at, updated_at`
	const insertLine = `INSERT INTO order_lines (order_id, position, listing_id, quantity, unit_price, negotiation_id)
                        VALUES ($1, $2, $3, $4, $5::text::numeric, $6)`

	created := *order
	created.Lines = append([]model.OrderLine(nil), order.Lines...)
	err := r.storage.atomically(ctx, func(q querier) error {
		err := q.QueryRow(ctx, insertOrder,
			order.BuyerID, order.FarmerID, order.Total.String(),
			string(order.Status), string(order.PaymentStatus), order.ShippingAddress,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}
		for i, line := range order.Lines {
			if _, err := q.Exec(ctx, insertLine, created.ID, i, line.ListingID, line.Quantity, line.UnitPrice.String(), line.NegotiationID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	q := r.storage.conn(ctx)
	order, err := scanOrder(q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	orders := []model.Order{*order}
	if err := attachLines(ctx, q, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) List(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE ($1::bigint = 0 OR buyer_id = $1)
                     AND ($2::bigint = 0 OR farmer_id = $2)
                     AND ($3::text = '' OR status = $3)
                   ORDER BY created_at DESC, id DESC`
	q := r.storage.conn(ctx)
	rows, err := q.Query(ctx, query, f.BuyerID, f.FarmerID, string(f.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := attachLines(ctx, q, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders SET status=$3, updated_at=NOW() WHERE id=$1 AND status=$2`
	return r.update(ctx, id, domainErrors.ErrConflict, query, id, string(from), string(to))
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id int64, from, to model.PaymentStatus) (*model.Order, error) {
	const query = `UPDATE orders SET payment_status=$3, updated_at=NOW() WHERE id=$1 AND payment_status=$2`
	return r.update(ctx, id, domainErrors.ErrConflict, query, id, string(from), string(to))
}

func (r *orderRepository) UpdateShippingAddress(ctx context.Context, id int64, address string) (*model.Order, error) {
	const query = `UPDATE orders SET shipping_address=$2, updated_at=NOW()
                   WHERE id=$1 AND status NOT IN ('delivered', 'cancelled')`
	return r.update(ctx, id, domainErrors.ErrAlreadyFinalized, query, id, address)
}

// update runs a guarded UPDATE and returns the fresh order, or noMatch when
// the guard rejected the write.
func (r *orderRepository) update(ctx context.Context, id int64, noMatch error, query string, args ...any) (*model.Order, error) {
	tag, err := r.storage.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, noMatch
	}
	return r.GetByID(ctx, id)
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o                     model.Order
		total                 string
		status, paymentStatus string
	)
	err := row.Scan(&o.ID, &o.BuyerID, &o.FarmerID, &total, &status, &paymentStatus, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if o.Total, err = parseDecimal(total); err != nil {
		return nil, err
	}
	o.Status = model.OrderStatus(status)
	o.PaymentStatus = model.PaymentStatus(paymentStatus)
	return &o, nil
}

func attachLines(ctx context.Context, q querier, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	const query = `SELECT order_id, listing_id, quantity, unit_price::text, negotiation_id
                   FROM order_lines WHERE order_id = ANY($1) ORDER BY order_id, position`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			line    model.OrderLine
			price   string
		)
		if err := rows.Scan(&orderID, &line.ListingID, &line.Quantity, &price, &line.NegotiationID); err != nil {
			return err
		}
		if line.UnitPrice, err = parseDecimal(price); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Lines = append(orders[i].Lines, line)
		}
	}
	return rows.Err()
}
