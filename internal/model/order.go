package model

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusShipping OrderStatus = "SHIPPING"
	OrderStatusCanceled OrderStatus = "CANCELED"
	OrderStatusSuccess  OrderStatus = "SUCCESS"
)

func (s OrderStatus) StatusCode() int {
	switch s {
	case OrderStatusPending:
		return 1
	case OrderStatusShipping:
		return 2
	case OrderStatusCanceled:
		return 3
	case OrderStatusSuccess:
		return 4
	default:
		return 0
	}
}

// OrderStatusFromCode resolves the client-side numeric filter back to a
// status. Code 0 means "all"; callers get (status, true) only for 1..4.
func OrderStatusFromCode(code int) (OrderStatus, bool) {
	switch code {
	case 1:
		return OrderStatusPending, true
	case 2:
		return OrderStatusShipping, true
	case 3:
		return OrderStatusCanceled, true
	case 4:
		return OrderStatusSuccess, true
	default:
		return "", false
	}
}

type OrderItemSummary struct {
	MedicineID   int     `db:"medicine_id" json:"medicine_id"`
	Amount       int     `db:"amount" json:"amount"`
	Price        float64 `db:"price" json:"price"`
	MedicineName string  `db:"medicine_name" json:"medicine_name"`
	ImageURL     *string `db:"img_link" json:"img_link"`
}

type OrderDetail struct {
	OrderID          int                `json:"order_id"`
	StatusCode       int                `json:"status_code"`
	StatusLabel      string             `json:"status_label"`
	ShippingPlatform *string            `json:"shipping_platform"`
	PaymentPlatform  *string            `json:"payment_platform"`
	TotalPrice       float64            `json:"tot_price"`
	Items            []OrderItemSummary `json:"items"`
}

type CreateOrderItemRequest struct {
	MedicineID int     `json:"medicine_id" binding:"required"`
	Amount     int     `json:"amount" binding:"required,gt=0"`
	Price      float64 `json:"price" binding:"min=0"`
}

type CreateOrderRequest struct {
	ShippingPlatform string                   `json:"shipping_platform" binding:"required"`
	PaymentPlatform  string                   `json:"payment_platform" binding:"required"`
	ImageURL         *string                  `json:"image_url"`
	Items            []CreateOrderItemRequest `json:"items" binding:"dive"`
}

type CreateOrderResponse struct {
	OrderID int `json:"order_id"`
}
