package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolmeal/internal/models/db_models"
)

type FoodRepository interface {
	WithTx(tx *gorm.DB) FoodRepository
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.FoodItem, error)
	FindByBarcode(ctx context.Context, barcode string) (*db_models.FoodItem, error)
	Search(ctx context.Context, query string, foodType db_models.FoodType, limit int) ([]db_models.FoodItem, error)
	ListBySlot(ctx context.Context, week, day int) ([]db_models.FoodItem, error)
	Create(ctx context.Context, item *db_models.FoodItem) error
	Update(ctx context.Context, item *db_models.FoodItem) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type foodRepository struct {
	db *gorm.DB
}

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (f *foodRepository) WithTx(tx *gorm.DB) FoodRepository {
	return &foodRepository{db: tx}
}

func (f *foodRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.FoodItem, error) {
	var item db_models.FoodItem
	if err := f.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (f *foodRepository) FindByBarcode(ctx context.Context, barcode string) (*db_models.FoodItem, error) {
	var item db_models.FoodItem
	if err := f.db.WithContext(ctx).First(&item, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Search matches query against name or type, case-insensitively. An empty foodType matches all types.
func (f *foodRepository) Search(ctx context.Context, query string, foodType db_models.FoodType, limit int) ([]db_models.FoodItem, error) {
	var items []db_models.FoodItem

	q := f.db.WithContext(ctx).Model(&db_models.FoodItem{})
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(type) LIKE ?", pattern, pattern)
	}
	if foodType != "" {
		q = q.Where("type = ?", foodType)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	err := q.Order("name ASC").Find(&items).Error
	return items, err
}

func (f *foodRepository) ListBySlot(ctx context.Context, week, day int) ([]db_models.FoodItem, error) {
	var items []db_models.FoodItem
	err := f.db.WithContext(ctx).
		Where("type = ? AND week = ? AND day = ?", db_models.FoodTypeSchool, week, day).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (f *foodRepository) Create(ctx context.Context, item *db_models.FoodItem) error {
	return f.db.WithContext(ctx).Create(item).Error
}

func (f *foodRepository) Update(ctx context.Context, item *db_models.FoodItem) error {
	return f.db.WithContext(ctx).Save(item).Error
}

// SoftDelete releases the barcode so a new item can claim it.
func (f *foodRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.FoodItem{}).Where("id = ?", id).Update("barcode", nil)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&db_models.FoodItem{}, "id = ?", id).Error
	})
}
