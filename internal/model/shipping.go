package model

import "time"

type ShippingAddress struct {
	FirstName  string   `db:"first_name" json:"first_name"`
	LastName   string   `db:"last_name" json:"last_name"`
	Address    string   `db:"address" json:"address"`
	PostalCode string   `db:"postal_code" json:"postal_code"`
	Phone      string   `db:"phone" json:"phone"`
	Lat        *float64 `db:"lat" json:"lat"`
	Lon        *float64 `db:"lon" json:"lon"`
}

type ShippingAddressRequest struct {
	FirstName  string   `json:"first_name" binding:"required"`
	LastName   string   `json:"last_name" binding:"required"`
	Address    string   `json:"address" binding:"required"`
	PostalCode string   `json:"postal_code" binding:"required"`
	Phone      string   `json:"phone" binding:"required"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
}

type ShippingOrderItem struct {
	MedicineID   int     `db:"medicine_id" json:"medicine_id"`
	MedicineName string  `db:"medicine_name" json:"medicine_name"`
	Quantity     int     `db:"quantity" json:"quantity"`
	UnitPrice    float64 `db:"unit_price" json:"unit_price"`
	ImageURL     *string `db:"img_url" json:"img_url"`
}

type ShippingOrderSummary struct {
	OrderID          int                 `json:"order_id"`
	StatusCode       int                 `json:"status_code"`
	StatusLabel      string              `json:"status_label"`
	ShippingPlatform *string             `json:"shipping_platform"`
	ImageURL         *string             `json:"image_url"`
	Items            []ShippingOrderItem `json:"items"`
}

type ShippingStatusEntry struct {
	At      time.Time `db:"at" json:"at"`
	Details *string   `db:"details" json:"details"`
	Lat     *float64  `db:"lat" json:"lat"`
	Lon     *float64  `db:"lon" json:"lon"`
}

type ShippingStatusTimeline struct {
	OrderID          int                   `json:"order_id"`
	ShippingPlatform *string               `json:"shipping_platform"`
	ImageURL         *string               `json:"image_url"`
	Status           []ShippingStatusEntry `json:"status"`
}

// ShippingMapPoints pairs the latest shipment position with the
// patient's address coordinates for static-map rendering.
type ShippingMapPoints struct {
	ShipmentLat *float64 `db:"shipment_lat"`
	ShipmentLon *float64 `db:"shipment_lon"`
	AddressLat  *float64 `db:"address_lat"`
	AddressLon  *float64 `db:"address_lon"`
}

func (p ShippingMapPoints) ShipmentCoordinates() (lat, lon float64, ok bool) {
	if p.ShipmentLat == nil || p.ShipmentLon == nil {
		return 0, 0, false
	}
	return *p.ShipmentLat, *p.ShipmentLon, true
}

func (p ShippingMapPoints) AddressCoordinates() (lat, lon float64, ok bool) {
	if p.AddressLat == nil || p.AddressLon == nil {
		return 0, 0, false
	}
	return *p.AddressLat, *p.AddressLon, true
}

func (p ShippingMapPoints) HasRequiredCoordinates() bool {
	_, _, a := p.ShipmentCoordinates()
	_, _, b := p.AddressCoordinates()
	return a && b
}
