package dto

import (
	"slices"

	"innkeep/internal/domains/serviceorder/model"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	gModel "innkeep/shared/model"
	"innkeep/shared/timezone"

	"github.com/google/uuid"
)

// ItemRequest is either a menu line, named by MenuItemID, or a free-form
// line with its own name and price.
type ItemRequest struct {
	MenuItemID string  `json:"menu_item_id" validate:"omitempty,uuid"`
	Name       string  `json:"name"         validate:"required_without=MenuItemID,max=100"`
	Price      float64 `json:"price"        validate:"min=0"`
	Qty        int     `json:"qty"          validate:"required,min=1"`
}

type CreateServiceOrderRequest struct {
	Items []ItemRequest `json:"items" validate:"required,min=1,dive"`
	Note  string        `json:"note"  validate:"omitempty,max=255"`
}

// MenuItemIDs lists the distinct menu items the order refers to.
func (c *CreateServiceOrderRequest) MenuItemIDs() []string {
	ids := []string{}

	for _, item := range c.Items {
		if item.MenuItemID != constant.Empty && !slices.Contains(ids, item.MenuItemID) {
			ids = append(ids, item.MenuItemID)
		}
	}

	return ids
}

// ToModel prices every line from its quantity and unit price; client totals
// are never trusted. Menu lines take their name and price from menu.
func (c *CreateServiceOrderRequest) ToModel(bookingID, roomID, user string, menu model.Menu) model.ServiceOrder {
	items := make(model.Items, len(c.Items))
	for i, item := range c.Items {
		name, price := item.Name, item.Price

		if entry, ok := menu[item.MenuItemID]; ok {
			name, price = entry.Name, entry.Price
		}

		items[i] = model.Item{
			MenuItemID: item.MenuItemID,
			Name:       name,
			Price:      price,
			Qty:        item.Qty,
			Total:      price * float64(item.Qty),
		}
	}

	return model.ServiceOrder{
		ID:         uuid.NewString(),
		BookingID:  bookingID,
		RoomID:     roomID,
		Items:      items,
		TotalValue: items.Sum(),
		Note:       c.Note,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type ServiceOrderResponse struct {
	ID         string       `json:"id"`
	BookingID  string       `json:"booking_id"`
	RoomID     string       `json:"room_id"`
	Items      []model.Item `json:"items"`
	TotalValue float64      `json:"total_value"`
	Note       string       `json:"note"`
	gDto.Metadata
}

func (r *ServiceOrderResponse) FromModel(mod model.ServiceOrder) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.RoomID = mod.RoomID
	r.Items = mod.Items
	r.TotalValue = mod.TotalValue
	r.Note = mod.Note
	r.Metadata.FromModel(mod.Metadata)
}

type GetServiceOrdersResponse struct {
	Orders     []ServiceOrderResponse `json:"orders"`
	TotalValue float64                `json:"total_value"`
}

func (r *GetServiceOrdersResponse) FromModels(models []model.ServiceOrder) {
	r.Orders = make([]ServiceOrderResponse, len(models))
	r.TotalValue = model.Total(models)

	for i, mod := range models {
		r.Orders[i].FromModel(mod)
	}
}

type CreateServiceOrderResponse struct {
	ID         string  `json:"id"`
	TotalValue float64 `json:"total_value"`
}

type MenuItemRequest struct {
	Name     string         `json:"name"      validate:"required,max=100"`
	Category model.Category `json:"category"  validate:"required,enum"`
	Price    float64        `json:"price"     validate:"min=0"`
	Unit     string         `json:"unit"      validate:"omitempty,max=20"`
	IsActive *bool          `json:"is_active"`
}

func (r *MenuItemRequest) active() bool {
	return r.IsActive == nil || *r.IsActive
}

// ToModel creates an item. Items are active unless stated otherwise.
func (r *MenuItemRequest) ToModel(user string) model.MenuItem {
	return model.MenuItem{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Unit:     r.Unit,
		IsActive: r.active(),
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

func (r *MenuItemRequest) ToFields(user string) map[string]any {
	return map[string]any{
		model.FieldName:          r.Name,
		model.FieldCategory:      r.Category,
		model.FieldPrice:         r.Price,
		model.FieldUnit:          r.Unit,
		model.FieldIsActive:      r.active(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

type MenuItemResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category model.Category `json:"category"`
	Price    float64        `json:"price"`
	Unit     string         `json:"unit"`
	IsActive bool           `json:"is_active"`
	gDto.Metadata
}

func (r *MenuItemResponse) FromModel(mod model.MenuItem) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Category = mod.Category
	r.Price = mod.Price
	r.Unit = mod.Unit
	r.IsActive = mod.IsActive
	r.Metadata.FromModel(mod.Metadata)
}

type GetMenuResponse struct {
	Items []MenuItemResponse `json:"items"`
}

func (r *GetMenuResponse) FromModels(models []model.MenuItem) {
	r.Items = make([]MenuItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

type SaveMenuItemResponse struct {
	ID string `json:"id"`
}
