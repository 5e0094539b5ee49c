package model

import (
	"errors"
	"fmt"

	"innkeep/shared/model"
)

const (
	MenuTableName  = "service_items"
	MenuEntityName = "service item"

	FieldName     = "name"
	FieldCategory = "category"
	FieldPrice    = "price"
	FieldUnit     = "unit"
	FieldIsActive = "is_active"
)

var ErrUnknownCategory = errors.New("unknown menu category")

type Category string

const (
	CategoryFood  Category = "food"
	CategoryDrink Category = "drink"
	CategoryOther Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryDrink, CategoryOther:
		return true
	default:
		return false
	}
}

func (c *Category) UnmarshalText(text []byte) error {
	value := Category(text)
	if !value.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, text)
	}

	*c = value

	return nil
}

func (c *Category) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return c.UnmarshalText([]byte(v))
	case []byte:
		return c.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCategory, src)
	}
}

func (c *Category) UnmarshalBSONValue(typ byte, data []byte) error {
	text, err := model.BSONText(typ, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownCategory, err)
	}

	return c.UnmarshalText(text)
}

// MenuItem is a priced entry on the food and drink menu. Inactive items stay
// in the catalog for history but cannot be ordered.
type MenuItem struct {
	ID             string   `bson:"_id"       db:"id"`
	Name           string   `bson:"name"      db:"name"`
	Category       Category `bson:"category"  db:"category"`
	Price          float64  `bson:"price"     db:"price"`
	Unit           string   `bson:"unit"      db:"unit"`
	IsActive       bool     `bson:"is_active" db:"is_active"`
	model.Metadata `bson:",inline"`
}

// Menu indexes items by id.
type Menu map[string]MenuItem

func NewMenu(items []MenuItem) Menu {
	menu := make(Menu, len(items))
	for _, item := range items {
		menu[item.ID] = item
	}

	return menu
}
