package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolmeal/internal/models/db_models"
)

type MenuRepository interface {
	FindPack(ctx context.Context, week, day int) (*db_models.MenuPack, error)
	CreatePack(ctx context.Context, pack *db_models.MenuPack) error
	ListPacks(ctx context.Context) ([]db_models.MenuPack, error)
	AddEntry(ctx context.Context, packID, foodID uuid.UUID) (*db_models.MenuPackEntry, error)
	FindEntry(ctx context.Context, packID, entryID uuid.UUID) (*db_models.MenuPackEntry, error)
	SetEntryActive(ctx context.Context, entryID uuid.UUID, active bool) error
	RemoveEntry(ctx context.Context, entryID uuid.UUID) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func orderedEntries(db *gorm.DB) *gorm.DB {
	return db.Order("ord ASC")
}

func (m *menuRepository) FindPack(ctx context.Context, week, day int) (*db_models.MenuPack, error) {
	var pack db_models.MenuPack
	err := m.db.WithContext(ctx).
		Preload("Entries", orderedEntries).
		Preload("Entries.Food").
		First(&pack, "week = ? AND day = ?", week, day).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pack, nil
}

func (m *menuRepository) CreatePack(ctx context.Context, pack *db_models.MenuPack) error {
	return m.db.WithContext(ctx).Omit("Entries").Create(pack).Error
}

func (m *menuRepository) ListPacks(ctx context.Context) ([]db_models.MenuPack, error) {
	var packs []db_models.MenuPack
	err := m.db.WithContext(ctx).
		Preload("Entries", orderedEntries).
		Preload("Entries.Food").
		Order("week ASC, day ASC").
		Find(&packs).Error
	return packs, err
}

// AddEntry appends foodID at the end of the pack, active.
func (m *menuRepository) AddEntry(ctx context.Context, packID, foodID uuid.UUID) (*db_models.MenuPackEntry, error) {
	var entry *db_models.MenuPackEntry

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrd int
		if err := tx.Model(&db_models.MenuPackEntry{}).
			Where("pack_id = ?", packID).
			Select("COALESCE(MAX(ord), 0)").
			Scan(&maxOrd).Error; err != nil {
			return err
		}

		entry = &db_models.MenuPackEntry{
			PackID:   packID,
			FoodID:   foodID,
			Ord:      maxOrd + 1,
			IsActive: true,
		}
		return tx.Omit("Food").Create(entry).Error
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (m *menuRepository) FindEntry(ctx context.Context, packID, entryID uuid.UUID) (*db_models.MenuPackEntry, error) {
	var entry db_models.MenuPackEntry
	err := m.db.WithContext(ctx).
		Preload("Food").
		First(&entry, "id = ? AND pack_id = ?", entryID, packID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (m *menuRepository) SetEntryActive(ctx context.Context, entryID uuid.UUID, active bool) error {
	return m.db.WithContext(ctx).
		Model(&db_models.MenuPackEntry{}).
		Where("id = ?", entryID).
		Update("is_active", active).Error
}

func (m *menuRepository) RemoveEntry(ctx context.Context, entryID uuid.UUID) error {
	return m.db.WithContext(ctx).Delete(&db_models.MenuPackEntry{}, "id = ?", entryID).Error
}
