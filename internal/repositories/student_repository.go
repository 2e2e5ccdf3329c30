package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolmeal/internal/models/db_models"
)

type TargetUpdate struct {
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64

	// Demographics are stored only when set
	Gender   string
	Age      *float64
	Height   *float64
	Weight   *float64
	Activity *float64
}

type StudentRepository interface {
	WithTx(tx *gorm.DB) StudentRepository
	Insert(ctx context.Context, student *db_models.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Student, error)
	FindByLogin(ctx context.Context, login string) (*db_models.Student, error)
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]db_models.Student, error)
	UpdateTargets(ctx context.Context, id uuid.UUID, update TargetUpdate) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) WithTx(tx *gorm.DB) StudentRepository {
	return &studentRepository{db: tx}
}

func (r *studentRepository) Insert(ctx context.Context, student *db_models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Student, error) {
	var student db_models.Student
	err := r.db.WithContext(ctx).First(&student, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &student, nil
}

func (r *studentRepository) FindByLogin(ctx context.Context, login string) (*db_models.Student, error) {
	var student db_models.Student
	err := r.db.WithContext(ctx).First(&student, "login = ?", login).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &student, nil
}

func (r *studentRepository) ListByParent(ctx context.Context, parentID uuid.UUID) ([]db_models.Student, error) {
	var students []db_models.Student
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("login ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepository) UpdateTargets(ctx context.Context, id uuid.UUID, update TargetUpdate) error {
	fields := map[string]interface{}{
		"calories": update.Calories,
		"protein":  update.Protein,
		"fat":      update.Fat,
		"carbs":    update.Carbs,
	}
	if update.Gender != "" {
		fields["gender"] = update.Gender
	}
	if update.Age != nil {
		fields["age"] = *update.Age
	}
	if update.Height != nil {
		fields["height"] = *update.Height
	}
	if update.Weight != nil {
		fields["weight"] = *update.Weight
	}
	if update.Activity != nil {
		fields["activity"] = *update.Activity
	}

	res := r.db.WithContext(ctx).
		Model(&db_models.Student{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
