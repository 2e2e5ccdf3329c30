package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolmeal/internal/models/db_models"
)

// IntakeRepository is append-only: events can be inserted and read, never changed.
type IntakeRepository interface {
	WithTx(tx *gorm.DB) IntakeRepository
	Insert(ctx context.Context, event *db_models.IntakeEvent) error
	// ListBetween returns events with from <= eaten_at < to (unix seconds).
	ListBetween(ctx context.Context, studentID uuid.UUID, from, to int64) ([]db_models.IntakeEvent, error)
	Count(ctx context.Context, studentID uuid.UUID) (int64, error)
}

type intakeRepository struct {
	db *gorm.DB
}

func NewIntakeRepository(db *gorm.DB) IntakeRepository {
	return &intakeRepository{db: db}
}

func (r *intakeRepository) WithTx(tx *gorm.DB) IntakeRepository {
	return &intakeRepository{db: tx}
}

func (r *intakeRepository) Insert(ctx context.Context, event *db_models.IntakeEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *intakeRepository) ListBetween(ctx context.Context, studentID uuid.UUID, from, to int64) ([]db_models.IntakeEvent, error) {
	var events []db_models.IntakeEvent
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("eaten_at >= ? AND eaten_at < ?", from, to).
		Order("eaten_at ASC, created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *intakeRepository) Count(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.IntakeEvent{}).
		Where("student_id = ?", studentID).
		Count(&n).Error
	return n, err
}
