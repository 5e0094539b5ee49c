package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"innkeep/shared/model"
)

const (
	TableName  = "service_orders"
	EntityName = "service order"

	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldRoomID     = "room_id"
	FieldItems      = "items"
	FieldTotalValue = "total_value"
	FieldNote       = "note"
)

var errUnsupportedSource = errors.New("unsupported items source")

type Item struct {
	MenuItemID string  `bson:"menu_item_id,omitempty" json:"menu_item_id,omitempty"`
	Name       string  `bson:"name"                   json:"name"`
	Price      float64 `bson:"price"                  json:"price"`
	Qty        int     `bson:"qty"                    json:"qty"`
	Total      float64 `bson:"total"                  json:"total"`
}

// Items is stored as a jsonb column.
type Items []Item

func (i Items) Value() (driver.Value, error) {
	data, err := json.Marshal(i)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal items: %w", err)
	}

	return data, nil
}

func (i *Items) Scan(src any) error {
	var data []byte

	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedSource, src)
	}

	if err := json.Unmarshal(data, i); err != nil {
		return fmt.Errorf("failed to unmarshal items: %w", err)
	}

	return nil
}

// Sum returns the order value from quantity and unit price.
func (i Items) Sum() float64 {
	var total float64

	for _, item := range i {
		total += item.Price * float64(item.Qty)
	}

	return total
}

type ServiceOrder struct {
	ID             string  `bson:"_id"         db:"id"`
	BookingID      string  `bson:"booking_id"  db:"booking_id"`
	RoomID         string  `bson:"room_id"     db:"room_id"`
	Items          Items   `bson:"items"       db:"items"`
	TotalValue     float64 `bson:"total_value" db:"total_value"`
	Note           string  `bson:"note"        db:"note"`
	model.Metadata `bson:",inline"`
}

// Total sums the value of orders.
func Total(orders []ServiceOrder) float64 {
	var total float64

	for _, order := range orders {
		total += order.TotalValue
	}

	return total
}
