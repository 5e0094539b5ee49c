package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"innkeep/internal/domains/serviceorder/model"
)

func TestMenuItem_DecodeDocument(t *testing.T) {
	tests := []struct {
		name     string
		category any
		expected model.Category
		wantErr  error
	}{
		{name: "known category", category: "drink", expected: model.CategoryDrink},
		{name: "unknown category", category: "dessert", wantErr: model.ErrUnknownCategory},
		{name: "category stored as a number", category: int32(2), wantErr: model.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(bson.D{
				{Key: "_id", Value: "m-1"},
				{Key: "name", Value: "Bia"},
				{Key: "category", Value: tt.category},
				{Key: "is_active", Value: true},
			})
			assert.NoError(t, err)

			var item model.MenuItem

			err = bson.Unmarshal(data, &item)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, item.Category)
			assert.True(t, item.IsActive)
		})
	}
}

func TestCategory_Scan(t *testing.T) {
	var category model.Category

	assert.NoError(t, category.Scan("food"))
	assert.Equal(t, model.CategoryFood, category)
	assert.ErrorIs(t, category.Scan([]byte("FOOD")), model.ErrUnknownCategory)
	assert.ErrorIs(t, category.Scan(7), model.ErrUnknownCategory)
}

func TestItems_Sum(t *testing.T) {
	items := model.Items{
		{Name: "Bia", Price: 20000, Qty: 3},
		{Name: "Mi xao", Price: 40000, Qty: 1},
	}

	assert.Equal(t, 100000.0, items.Sum())
}
