package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

func (r *orderRepository) ListDetails(ctx context.Context, patientID uuid.UUID) ([]model.OrderDetail, error) {
	type orderRow struct {
		OrderID          int               `db:"order_id"`
		Status           model.OrderStatus `db:"status"`
		ShippingPlatform *string           `db:"shipping_platform"`
		PaymentPlatform  *string           `db:"payment_platform"`
	}
	orders := []orderRow{}
	err := r.db.SelectContext(ctx, &orders, `
		SELECT order_id, status, shipping_platform, payment_platform
		FROM orders
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`, patientID)
	if err != nil {
		return nil, apperror.FromDB(err, "orders")
	}
	if len(orders) == 0 {
		return []model.OrderDetail{}, nil
	}

	type itemRow struct {
		OrderID      int     `db:"order_id"`
		MedicineID   int     `db:"medicine_id"`
		MedicineName string  `db:"medicine_name"`
		Quantity     int     `db:"quantity"`
		UnitPrice    float64 `db:"unit_price"`
		ImageURL     *string `db:"image_url"`
	}
	items := []itemRow{}
	err = r.db.SelectContext(ctx, &items, `
		SELECT
			oi.order_id,
			oi.medicine_id,
			m.medicine_name,
			oi.quantity,
			oi.unit_price::float8 AS unit_price,
			m.image_url
		FROM order_items oi
		JOIN medicines m ON m.medicine_id = oi.medicine_id
		JOIN orders o ON o.order_id = oi.order_id
		WHERE o.patient_id = $1
		ORDER BY oi.order_id
	`, patientID)
	if err != nil {
		return nil, apperror.FromDB(err, "order items")
	}

	itemsByOrder := make(map[int][]model.OrderItemSummary, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], model.OrderItemSummary{
			MedicineID:   item.MedicineID,
			Amount:       item.Quantity,
			Price:        item.UnitPrice,
			MedicineName: item.MedicineName,
			ImageURL:     item.ImageURL,
		})
	}

	details := make([]model.OrderDetail, 0, len(orders))
	for _, order := range orders {
		orderItems := itemsByOrder[order.OrderID]
		if orderItems == nil {
			orderItems = []model.OrderItemSummary{}
		}
		var total float64
		for _, item := range orderItems {
			total += item.Price * float64(item.Amount)
		}
		details = append(details, model.OrderDetail{
			OrderID:          order.OrderID,
			StatusCode:       order.Status.StatusCode(),
			StatusLabel:      string(order.Status),
			ShippingPlatform: order.ShippingPlatform,
			PaymentPlatform:  order.PaymentPlatform,
			TotalPrice:       total,
			Items:            orderItems,
		})
	}
	return details, nil
}

func (r *orderRepository) Create(ctx context.Context, patientID uuid.UUID, req *model.CreateOrderRequest) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	defer tx.Rollback()

	var orderID int
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO orders (patient_id, shipping_platform, payment_platform, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING order_id
	`, patientID, req.ShippingPlatform, req.PaymentPlatform, req.ImageURL).Scan(&orderID)
	if err != nil {
		return 0, apperror.FromDB(err, "order")
	}

	for _, item := range req.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, medicine_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, orderID, item.MedicineID, item.Amount, item.Price)
		if err != nil {
			return 0, apperror.FromDB(err, "order item")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, apperror.Internal(err)
	}
	return orderID, nil
}

func (r *orderRepository) Confirm(ctx context.Context, patientID uuid.UUID, orderID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = 'SHIPPING'
		WHERE order_id = $1
		  AND patient_id = $2
		  AND status = 'PENDING'
	`, orderID, patientID)
	if err != nil {
		return false, apperror.FromDB(err, "order")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}
