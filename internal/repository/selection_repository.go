package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"musicmentor/internal/model"
)

// SelectionRepository defines basket persistence operations.
type SelectionRepository interface {
	Create(ctx context.Context, selection *model.Selection) error
	ListByEmail(ctx context.Context, email string) ([]model.Selection, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteByClassAndEmail(ctx context.Context, classItemID uuid.UUID, email string) (int64, error)
}

type selectionRepository struct {
	db *gorm.DB
}

// NewSelectionRepository creates a new selection repository.
func NewSelectionRepository(db *gorm.DB) SelectionRepository {
	return &selectionRepository{db: db}
}

func (r *selectionRepository) Create(ctx context.Context, selection *model.Selection) error {
	return r.db.WithContext(ctx).Create(selection).Error
}

func (r *selectionRepository) ListByEmail(ctx context.Context, email string) ([]model.Selection, error) {
	var selections []model.Selection
	if err := r.db.WithContext(ctx).Where("email = ?", email).Find(&selections).Error; err != nil {
		return nil, err
	}
	return selections, nil
}

// DeleteByID removes a basket entry and reports how many rows were deleted.
func (r *selectionRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Selection{})
	return res.RowsAffected, res.Error
}

// DeleteByClassAndEmail removes the basket entries for one (class, student)
// pair. Zero deleted rows is not an error.
func (r *selectionRepository) DeleteByClassAndEmail(ctx context.Context, classItemID uuid.UUID, email string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("class_item_id = ? AND email = ?", classItemID, email).
		Delete(&model.Selection{})
	return res.RowsAffected, res.Error
}
