package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/repositories"
	"schoolmeal/pkg/utils"
)

func TestFoodService_CatalogFlow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(repositories.NewFoodRepository(db))
	ctx := context.Background()
	cook := Actor{UserID: uuid.New(), Role: RoleCook}
	student := Actor{UserID: uuid.New(), Role: RoleStudent}

	soup, err := svc.Create(ctx, cook, request_models.FoodItemRequest{
		Name: "Chicken soup", Calories: 120, Protein: 8, Fat: 4, Carbs: 12,
		Type: "school", Week: ptr(1), Day: ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "school", soup.Type)

	yogurt, err := svc.Create(ctx, student, request_models.FoodItemRequest{
		Name: "Yogurt", Calories: 60, Protein: 4, Fat: 2, Carbs: 6, Barcode: "4601234567890",
	})
	require.NoError(t, err)
	assert.Equal(t, "normal", yogurt.Type)

	_, err = svc.Create(ctx, student, request_models.FoodItemRequest{Name: "Fake school", Type: "school"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = svc.Create(ctx, student, request_models.FoodItemRequest{Name: "Dup", Barcode: "4601234567890"})
	assert.ErrorIs(t, err, utils.ErrValidation)

	found, err := svc.FindByBarcode(ctx, "4601234567890")
	require.NoError(t, err)
	assert.Equal(t, yogurt.ID, found.ID)

	results, err := svc.Search(ctx, "SOUP", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, soup.ID, results[0].ID)

	schoolOnly, err := svc.Search(ctx, "", "school")
	require.NoError(t, err)
	assert.Len(t, schoolOnly, 1)

	other := Actor{UserID: uuid.New(), Role: RoleStudent}
	_, err = svc.Update(ctx, other, uuid.MustParse(yogurt.ID), request_models.FoodItemRequest{Name: "Mine now"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	updated, err := svc.Update(ctx, student, uuid.MustParse(yogurt.ID), request_models.FoodItemRequest{
		Name: "Greek yogurt", Calories: 97, Protein: 9, Fat: 5, Carbs: 4, Barcode: "4601234567890",
	})
	require.NoError(t, err)
	assert.Equal(t, "Greek yogurt", updated.Name)

	require.NoError(t, svc.Delete(ctx, student, uuid.MustParse(yogurt.ID)))
	_, err = svc.Get(ctx, uuid.MustParse(yogurt.ID))
	assert.ErrorIs(t, err, utils.ErrFoodNotFound)

	// the barcode is free again after deletion
	_, err = svc.Create(ctx, cook, request_models.FoodItemRequest{Name: "New yogurt", Barcode: "4601234567890"})
	assert.NoError(t, err)
}

func TestFoodService_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(repositories.NewFoodRepository(db))
	ctx := context.Background()
	cook := Actor{UserID: uuid.New(), Role: RoleCook}

	for name, req := range map[string]request_models.FoodItemRequest{
		"missing name": {Calories: 10},
		"negative fat": {Name: "x", Fat: -1},
		"week 3":       {Name: "x", Type: "school", Week: ptr(3)},
		"day 0":        {Name: "x", Type: "school", Day: ptr(0)},
		"unknown type": {Name: "x", Type: "dessert"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, cook, req)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
}
