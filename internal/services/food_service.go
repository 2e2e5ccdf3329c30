package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolmeal/internal/models/db_models"
	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/models/response_models"
	"schoolmeal/internal/repositories"
	"schoolmeal/pkg/utils"
)

const searchLimit = 100

type FoodServiceInterface interface {
	Create(ctx context.Context, actor Actor, request request_models.FoodItemRequest) (*response_models.FoodItemResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.FoodItemRequest) (*response_models.FoodItemResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*response_models.FoodItemResponse, error)
	FindByBarcode(ctx context.Context, barcode string) (*response_models.FoodItemResponse, error)
	Search(ctx context.Context, query string, foodType string) ([]response_models.FoodItemResponse, error)
}

type FoodService struct {
	foodRepo repositories.FoodRepository
}

func NewFoodService(foodRepo repositories.FoodRepository) FoodServiceInterface {
	return &FoodService{foodRepo: foodRepo}
}

func parseFoodType(raw string) (db_models.FoodType, error) {
	switch db_models.FoodType(strings.ToLower(strings.TrimSpace(raw))) {
	case "", db_models.FoodTypeNormal:
		return db_models.FoodTypeNormal, nil
	case db_models.FoodTypeSchool:
		return db_models.FoodTypeSchool, nil
	}
	return "", utils.NewValidationError("type", "must be school or normal")
}

func validateFoodRequest(request request_models.FoodItemRequest) (db_models.FoodType, error) {
	if strings.TrimSpace(request.Name) == "" {
		return "", utils.NewValidationError("name", "is required")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"calories", request.Calories},
		{"protein", request.Protein},
		{"fat", request.Fat},
		{"carbs", request.Carbs},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return "", utils.NewValidationError(f.name, "must be a non-negative number")
		}
	}
	if request.Week != nil && (*request.Week < 1 || *request.Week > 2) {
		return "", utils.NewValidationError("week", "must be 1 or 2")
	}
	if request.Day != nil && (*request.Day < 1 || *request.Day > 7) {
		return "", utils.NewValidationError("day", "must be between 1 and 7")
	}
	return parseFoodType(request.Type)
}

// canEditFood: cooks and admins manage the whole catalog, everyone else only what they added.
func canEditFood(actor Actor, item *db_models.FoodItem) error {
	if actor.Role == RoleCook || actor.Role == RoleAdmin {
		return nil
	}
	if item.Type == db_models.FoodTypeNormal && item.CreatedBy != nil && *item.CreatedBy == actor.UserID {
		return nil
	}
	return utils.ErrForbidden
}

func (f *FoodService) ensureBarcodeFree(ctx context.Context, barcode string, self uuid.UUID) error {
	if barcode == "" {
		return nil
	}
	existing, err := f.foodRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil && existing.ID != self {
		return utils.NewValidationError("barcode", "is already used by another item")
	}
	return nil
}

func applyFoodRequest(item *db_models.FoodItem, request request_models.FoodItemRequest, foodType db_models.FoodType) {
	item.Name = strings.TrimSpace(request.Name)
	item.Calories = request.Calories
	item.Protein = request.Protein
	item.Fat = request.Fat
	item.Carbs = request.Carbs
	item.Type = foodType
	item.Image = request.Image
	item.Week = request.Week
	item.Day = request.Day

	item.Barcode = nil
	if code := strings.TrimSpace(request.Barcode); code != "" {
		item.Barcode = &code
	}
}

func (f *FoodService) Create(ctx context.Context, actor Actor, request request_models.FoodItemRequest) (*response_models.FoodItemResponse, error) {
	foodType, err := validateFoodRequest(request)
	if err != nil {
		return nil, err
	}
	if foodType == db_models.FoodTypeSchool && actor.Role != RoleCook && actor.Role != RoleAdmin {
		return nil, utils.ErrForbidden
	}
	if err := f.ensureBarcodeFree(ctx, strings.TrimSpace(request.Barcode), uuid.Nil); err != nil {
		return nil, err
	}

	creator := actor.UserID
	item := &db_models.FoodItem{CreatedBy: &creator}
	applyFoodRequest(item, request, foodType)

	if err := f.foodRepo.Create(ctx, item); err != nil {
		log.Printf("Error creating food item %q: %v", item.Name, err)
		return nil, utils.ErrDatabaseError
	}

	resp := toFoodResponse(item)
	return &resp, nil
}

func (f *FoodService) Update(ctx context.Context, actor Actor, id uuid.UUID, request request_models.FoodItemRequest) (*response_models.FoodItemResponse, error) {
	foodType, err := validateFoodRequest(request)
	if err != nil {
		return nil, err
	}

	item, err := f.foodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrFoodNotFound
	}
	if err := canEditFood(actor, item); err != nil {
		return nil, err
	}
	if foodType == db_models.FoodTypeSchool && actor.Role != RoleCook && actor.Role != RoleAdmin {
		return nil, utils.ErrForbidden
	}
	if err := f.ensureBarcodeFree(ctx, strings.TrimSpace(request.Barcode), item.ID); err != nil {
		return nil, err
	}

	applyFoodRequest(item, request, foodType)
	if err := f.foodRepo.Update(ctx, item); err != nil {
		log.Printf("Error updating food item %s: %v", id, err)
		return nil, utils.ErrDatabaseError
	}

	resp := toFoodResponse(item)
	return &resp, nil
}

func (f *FoodService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	item, err := f.foodRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if item == nil {
		return utils.ErrFoodNotFound
	}
	if err := canEditFood(actor, item); err != nil {
		return err
	}

	if err := f.foodRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrFoodNotFound
		}
		log.Printf("Error deleting food item %s: %v", id, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (f *FoodService) Get(ctx context.Context, id uuid.UUID) (*response_models.FoodItemResponse, error) {
	item, err := f.foodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrFoodNotFound
	}
	resp := toFoodResponse(item)
	return &resp, nil
}

func (f *FoodService) FindByBarcode(ctx context.Context, barcode string) (*response_models.FoodItemResponse, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, utils.NewValidationError("barcode", "is required")
	}
	item, err := f.foodRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrFoodNotFound
	}
	resp := toFoodResponse(item)
	return &resp, nil
}

func (f *FoodService) Search(ctx context.Context, query string, foodType string) ([]response_models.FoodItemResponse, error) {
	var ft db_models.FoodType
	if strings.TrimSpace(foodType) != "" {
		parsed, err := parseFoodType(foodType)
		if err != nil {
			return nil, err
		}
		ft = parsed
	}

	items, err := f.foodRepo.Search(ctx, query, ft, searchLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.FoodItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toFoodResponse(&items[i]))
	}
	return out, nil
}
