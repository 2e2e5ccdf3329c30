package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolmeal/internal/models/db_models"
)

// AccountRepository covers the non-student login tables.
type AccountRepository interface {
	InsertParent(ctx context.Context, parent *db_models.Parent) error
	InsertCook(ctx context.Context, cook *db_models.Cook) error
	FindParentByLogin(ctx context.Context, login string) (*db_models.Parent, error)
	FindCookByLogin(ctx context.Context, login string) (*db_models.Cook, error)
	InsertAdmin(ctx context.Context, admin *db_models.Admin) error
	FindAdminByLogin(ctx context.Context, login string) (*db_models.Admin, error)
	FindAdminByID(ctx context.Context, id uuid.UUID) (*db_models.Admin, error)
	LoginTaken(ctx context.Context, login string) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (a *accountRepository) InsertParent(ctx context.Context, parent *db_models.Parent) error {
	return a.db.WithContext(ctx).Create(parent).Error
}

func (a *accountRepository) InsertCook(ctx context.Context, cook *db_models.Cook) error {
	return a.db.WithContext(ctx).Create(cook).Error
}

func (a *accountRepository) InsertAdmin(ctx context.Context, admin *db_models.Admin) error {
	return a.db.WithContext(ctx).Create(admin).Error
}

func (a *accountRepository) FindParentByLogin(ctx context.Context, login string) (*db_models.Parent, error) {
	var parent db_models.Parent
	if err := a.db.WithContext(ctx).First(&parent, "login = ?", login).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &parent, nil
}

func (a *accountRepository) FindCookByLogin(ctx context.Context, login string) (*db_models.Cook, error) {
	var cook db_models.Cook
	if err := a.db.WithContext(ctx).First(&cook, "login = ?", login).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cook, nil
}

func (a *accountRepository) FindAdminByLogin(ctx context.Context, login string) (*db_models.Admin, error) {
	var admin db_models.Admin
	if err := a.db.WithContext(ctx).First(&admin, "login = ?", login).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (a *accountRepository) FindAdminByID(ctx context.Context, id uuid.UUID) (*db_models.Admin, error) {
	var admin db_models.Admin
	if err := a.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// LoginTaken reports whether any account table already uses login.
func (a *accountRepository) LoginTaken(ctx context.Context, login string) (bool, error) {
	for _, model := range []interface{}{
		&db_models.Student{},
		&db_models.Parent{},
		&db_models.Cook{},
		&db_models.Admin{},
	} {
		var n int64
		if err := a.db.WithContext(ctx).Model(model).Where("login = ?", login).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}
