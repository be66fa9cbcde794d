package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

func (r *shippingRepository) Address(ctx context.Context, patientID uuid.UUID) (*model.ShippingAddress, error) {
	var addr model.ShippingAddress
	err := r.db.GetContext(ctx, &addr, `
		SELECT first_name, last_name, address, postal_code, phone, lat, lon
		FROM shipping_address
		WHERE patient_id = $1
	`, patientID)
	if err != nil {
		return nil, apperror.FromDB(err, "shipping address")
	}
	return &addr, nil
}

func (r *shippingRepository) UpsertAddress(ctx context.Context, patientID uuid.UUID, req *model.ShippingAddressRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shipping_address (
			patient_id, first_name, last_name, address, postal_code, phone, lat, lon
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (patient_id) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    address = EXCLUDED.address,
		    postal_code = EXCLUDED.postal_code,
		    phone = EXCLUDED.phone,
		    lat = EXCLUDED.lat,
		    lon = EXCLUDED.lon
	`, patientID, req.FirstName, req.LastName, req.Address, req.PostalCode, req.Phone, req.Lat, req.Lon)
	if err != nil {
		return apperror.FromDB(err, "shipping address")
	}
	return nil
}

func (r *shippingRepository) UpdateAddress(ctx context.Context, patientID uuid.UUID, req *model.ShippingAddressRequest) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shipping_address
		SET first_name = $2,
		    last_name = $3,
		    address = $4,
		    postal_code = $5,
		    phone = $6,
		    lat = $7,
		    lon = $8
		WHERE patient_id = $1
	`, patientID, req.FirstName, req.LastName, req.Address, req.PostalCode, req.Phone, req.Lat, req.Lon)
	if err != nil {
		return false, apperror.FromDB(err, "shipping address")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Internal(err)
	}
	return n > 0, nil
}

func (r *shippingRepository) ListOrders(ctx context.Context, patientID uuid.UUID, status *model.OrderStatus) ([]model.ShippingOrderSummary, error) {
	type orderRow struct {
		OrderID          int               `db:"order_id"`
		Status           model.OrderStatus `db:"status"`
		ShippingPlatform *string           `db:"shipping_platform"`
		ImageURL         *string           `db:"image_url"`
	}
	query := `
		SELECT order_id, status, shipping_platform, image_url
		FROM orders
		WHERE patient_id = $1
	`
	args := []any{patientID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	orders := []orderRow{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, apperror.FromDB(err, "orders")
	}
	if len(orders) == 0 {
		return []model.ShippingOrderSummary{}, nil
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
	err := r.db.SelectContext(ctx, &items, `
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

	itemsByOrder := make(map[int][]model.ShippingOrderItem, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], model.ShippingOrderItem{
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			ImageURL:     item.ImageURL,
		})
	}

	summaries := make([]model.ShippingOrderSummary, 0, len(orders))
	for _, order := range orders {
		orderItems := itemsByOrder[order.OrderID]
		if orderItems == nil {
			orderItems = []model.ShippingOrderItem{}
		}
		summaries = append(summaries, model.ShippingOrderSummary{
			OrderID:          order.OrderID,
			StatusCode:       order.Status.StatusCode(),
			StatusLabel:      string(order.Status),
			ShippingPlatform: order.ShippingPlatform,
			ImageURL:         order.ImageURL,
			Items:            orderItems,
		})
	}
	return summaries, nil
}

func (r *shippingRepository) Timeline(ctx context.Context, patientID uuid.UUID, orderID int) (*model.ShippingStatusTimeline, error) {
	var order struct {
		OrderID          int     `db:"order_id"`
		ShippingPlatform *string `db:"shipping_platform"`
		ImageURL         *string `db:"image_url"`
	}
	err := r.db.GetContext(ctx, &order, `
		SELECT order_id, shipping_platform, image_url
		FROM orders
		WHERE order_id = $1 AND patient_id = $2
	`, orderID, patientID)
	if err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	entries := []model.ShippingStatusEntry{}
	err = r.db.SelectContext(ctx, &entries, `
		SELECT at, details, lat, lon
		FROM shipping_status
		WHERE order_id = $1
		ORDER BY at
	`, orderID)
	if err != nil {
		return nil, apperror.FromDB(err, "shipping status")
	}

	return &model.ShippingStatusTimeline{
		OrderID:          orderID,
		ShippingPlatform: order.ShippingPlatform,
		ImageURL:         order.ImageURL,
		Status:           entries,
	}, nil
}

func (r *shippingRepository) MapPoints(ctx context.Context, patientID uuid.UUID, orderID int) (*model.ShippingMapPoints, error) {
	var points model.ShippingMapPoints
	err := r.db.GetContext(ctx, &points, `
		SELECT
			sa.lat AS address_lat,
			sa.lon AS address_lon,
			status_point.lat AS shipment_lat,
			status_point.lon AS shipment_lon
		FROM orders o
		LEFT JOIN shipping_address sa ON sa.patient_id = o.patient_id
		LEFT JOIN LATERAL (
			SELECT lat, lon
			FROM shipping_status
			WHERE order_id = o.order_id
			ORDER BY at DESC
			LIMIT 1
		) status_point ON TRUE
		WHERE o.order_id = $1
		  AND o.patient_id = $2
	`, orderID, patientID)
	if err != nil {
		return nil, apperror.FromDB(err, "order")
	}
	return &points, nil
}
