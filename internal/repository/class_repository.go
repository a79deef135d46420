package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"musicmentor/internal/model"
)

// ClassRepository defines catalog persistence operations.
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]model.Class, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ClassStatus) (int64, error)
	UpdateFeedback(ctx context.Context, id uuid.UUID, feedback string) (int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	ListPopular(ctx context.Context, limit int) ([]model.Class, error)
	PopularInstructors(ctx context.Context, limit int) ([]model.InstructorSummary, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	var class model.Class
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&class).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) List(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	if err := r.db.WithContext(ctx).Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) ListByInstructor(ctx context.Context, email string) ([]model.Class, error) {
	var classes []model.Class
	if err := r.db.WithContext(ctx).Where("instructor_email = ?", email).Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ClassStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Class{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *classRepository) UpdateFeedback(ctx context.Context, id uuid.UUID, feedback string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Class{}).
		Where("id = ?", id).
		Update("feedback", feedback)
	return res.RowsAffected, res.Error
}

// UpdateFields applies a partial update. Callers must have stripped immutable
// columns from fields already.
func (r *classRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Class{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// ListPopular returns classes ordered by enrollment, highest first.
func (r *classRepository) ListPopular(ctx context.Context, limit int) ([]model.Class, error) {
	var classes []model.Class
	if err := r.db.WithContext(ctx).
		Order("enrolled_student DESC").
		Limit(limit).
		Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

// instructorRow is the raw aggregation row; class titles arrive joined.
type instructorRow struct {
	InstructorName  string
	InstructorEmail string
	InstructorImage string
	ClassTitles     string
	TotalEnrolled   int
}

// titleSeparator joins distinct class titles in the aggregation row.
const titleSeparator = "\x1f"

// popularInstructorsSelect embeds the separator as a quoted literal: MySQL's
// grammar only allows a string literal after SEPARATOR, never a bind marker.
var popularInstructorsSelect = fmt.Sprintf(
	"instructor_email, MAX(instructor_name) AS instructor_name, "+
		"MAX(image) AS instructor_image, "+
		"GROUP_CONCAT(DISTINCT title SEPARATOR '%s') AS class_titles, "+
		"SUM(enrolled_student) AS total_enrolled", titleSeparator)

// PopularInstructors groups classes by instructor, summing enrollment and
// collecting distinct titles. Order between instructors with equal totals is
// whatever the database emits.
func (r *classRepository) PopularInstructors(ctx context.Context, limit int) ([]model.InstructorSummary, error) {
	var rows []instructorRow
	err := r.db.WithContext(ctx).
		Model(&model.Class{}).
		Select(popularInstructorsSelect).
		Group("instructor_email").
		Order("total_enrolled DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]model.InstructorSummary, 0, len(rows))
	for _, row := range rows {
		summary := model.InstructorSummary{
			InstructorName:  row.InstructorName,
			InstructorEmail: row.InstructorEmail,
			InstructorImage: row.InstructorImage,
			TotalEnrolled:   row.TotalEnrolled,
		}
		if row.ClassTitles != "" {
			summary.ClassTitles = strings.Split(row.ClassTitles, titleSeparator)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
