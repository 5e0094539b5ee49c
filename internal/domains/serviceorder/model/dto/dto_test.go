package dto_test

import (
	"testing"

	"innkeep/internal/domains/serviceorder/model"
	"innkeep/internal/domains/serviceorder/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestCreateServiceOrderRequest_ToModel(t *testing.T) {
	req := dto.CreateServiceOrderRequest{
		Items: []dto.ItemRequest{
			{Name: "Nasi goreng", Price: 35000, Qty: 2},
			{Name: "Laundry", Price: 15000, Qty: 1},
		},
		Note: "deliver at 7",
	}

	order := req.ToModel("b-1", "101", "receptionist-1", nil)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "b-1", order.BookingID)
	assert.Equal(t, "101", order.RoomID)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 70000.0, order.Items[0].Total)
	assert.Equal(t, 85000.0, order.TotalValue)
	assert.Equal(t, "receptionist-1", order.CreatedBy)
}

func TestGetServiceOrdersResponse_FromModels(t *testing.T) {
	orders := []model.ServiceOrder{
		{ID: "o-1", TotalValue: 70000},
		{ID: "o-2", TotalValue: 15000},
	}

	var res dto.GetServiceOrdersResponse
	res.FromModels(orders)

	assert.Len(t, res.Orders, 2)
	assert.Equal(t, "o-2", res.Orders[1].ID)
	assert.Equal(t, 85000.0, res.TotalValue)
}

func TestCreateServiceOrderRequest_ToModel_MenuLines(t *testing.T) {
	req := dto.CreateServiceOrderRequest{
		Items: []dto.ItemRequest{
			{MenuItemID: "m-1", Name: "cheap coffee", Price: 1, Qty: 2},
			{MenuItemID: "m-1", Qty: 1},
			{Name: "Extra towel", Price: 10000, Qty: 1},
		},
	}

	assert.Equal(t, []string{"m-1"}, req.MenuItemIDs())

	menu := model.NewMenu([]model.MenuItem{{ID: "m-1", Name: "Ca phe sua", Price: 25000, IsActive: true}})
	order := req.ToModel("b-1", "101", "receptionist-1", menu)

	assert.Equal(t, "Ca phe sua", order.Items[0].Name)
	assert.Equal(t, 50000.0, order.Items[0].Total)
	assert.Equal(t, "m-1", order.Items[1].MenuItemID)
	assert.Equal(t, "Extra towel", order.Items[2].Name)
	assert.Equal(t, 85000.0, order.TotalValue)
}

func TestMenuItemRequest_ToModel(t *testing.T) {
	inactive := false

	tests := []struct {
		name       string
		req        dto.MenuItemRequest
		wantActive bool
	}{
		{
			name:       "active by default",
			req:        dto.MenuItemRequest{Name: "Bia", Category: model.CategoryDrink, Price: 20000},
			wantActive: true,
		},
		{
			name: "explicitly inactive",
			req:  dto.MenuItemRequest{Name: "Bia", Category: model.CategoryDrink, Price: 20000, IsActive: &inactive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.req.ToModel("manager-1")

			assert.NotEmpty(t, item.ID)
			assert.Equal(t, tt.wantActive, item.IsActive)
			assert.Equal(t, tt.wantActive, tt.req.ToFields("manager-1")[model.FieldIsActive])
			assert.Equal(t, "manager-1", item.CreatedBy)
		})
	}
}
