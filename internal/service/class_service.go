package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"musicmentor/internal/cache"
	apperrors "musicmentor/internal/errors"
	"musicmentor/internal/model"
	"musicmentor/internal/repository"
)

const (
	// DefaultPopularLimit caps the popular classes/instructors listings.
	DefaultPopularLimit = 6

	popularCacheTTL = 5 * time.Minute
)

// ClassService exposes catalog operations.
type ClassService interface {
	Create(ctx context.Context, class *model.Class) (*model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]model.Class, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.ClassStatus) (*model.Class, error)
	SetFeedback(ctx context.Context, id uuid.UUID, feedback string) (*model.Class, error)
	PatchFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Class, error)
	Popular(ctx context.Context, limit int) ([]model.Class, error)
	PopularInstructors(ctx context.Context, limit int) ([]model.InstructorSummary, error)
}

type classService struct {
	repo  repository.ClassRepository
	cache *cache.Client
}

// NewClassService builds a ClassService with repository and cache.
func NewClassService(repo repository.ClassRepository, cache *cache.Client) ClassService {
	return &classService{repo: repo, cache: cache}
}

// Create validates and stores a new class offering. New classes always start
// in the pending state.
func (s *classService) Create(ctx context.Context, class *model.Class) (*model.Class, error) {
	if class.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidPrice
	}
	if class.AvailableSeats <= 0 {
		return nil, apperrors.ErrInvalidSeats
	}

	class.Status = model.ClassStatusPending
	class.EnrolledStudent = 0
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}

	s.invalidatePopular(ctx)
	return class, nil
}

func (s *classService) List(ctx context.Context) ([]model.Class, error) {
	return s.repo.List(ctx)
}

func (s *classService) ListByInstructor(ctx context.Context, email string) ([]model.Class, error) {
	return s.repo.ListByInstructor(ctx, email)
}

// SetStatus transitions a class through its approval lifecycle. MySQL reports
// zero affected rows for a no-op transition, so existence is settled by the
// read-back rather than the row count.
func (s *classService) SetStatus(ctx context.Context, id uuid.UUID, status model.ClassStatus) (*model.Class, error) {
	if _, err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.invalidatePopular(ctx)
	return s.findMapped(ctx, id)
}

func (s *classService) SetFeedback(ctx context.Context, id uuid.UUID, feedback string) (*model.Class, error) {
	if _, err := s.repo.UpdateFeedback(ctx, id, feedback); err != nil {
		return nil, err
	}
	return s.findMapped(ctx, id)
}

// immutableClassColumns may never be touched by a partial update. The
// counters belong to the payment workflow alone.
var immutableClassColumns = []string{
	"id", "available_seats", "enrolled_student", "created_at", "updated_at",
}

// PatchFields applies an arbitrary partial update to a class, minus the
// immutable columns.
func (s *classService) PatchFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Class, error) {
	for _, col := range immutableClassColumns {
		delete(fields, col)
	}
	if len(fields) == 0 {
		return s.findMapped(ctx, id)
	}

	if _, err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	s.invalidatePopular(ctx)
	return s.findMapped(ctx, id)
}

// Popular returns up to limit classes with the highest enrollment, served
// cache-aside.
func (s *classService) Popular(ctx context.Context, limit int) ([]model.Class, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	key := fmt.Sprintf("popular:classes:%d", limit)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Class
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	classes, err := s.repo.ListPopular(ctx, limit)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(classes); err == nil {
		_ = s.cache.Set(ctx, key, payload, popularCacheTTL)
	}
	return classes, nil
}

// PopularInstructors ranks instructors by total enrollment across their
// classes, served cache-aside.
func (s *classService) PopularInstructors(ctx context.Context, limit int) ([]model.InstructorSummary, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	key := fmt.Sprintf("popular:instructors:%d", limit)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.InstructorSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	summaries, err := s.repo.PopularInstructors(ctx, limit)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(summaries); err == nil {
		_ = s.cache.Set(ctx, key, payload, popularCacheTTL)
	}
	return summaries, nil
}

func (s *classService) findMapped(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return class, nil
}

func (s *classService) mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrClassNotFound
	}
	return err
}

func (s *classService) invalidatePopular(ctx context.Context) {
	_ = s.cache.Delete(ctx, fmt.Sprintf("popular:classes:%d", DefaultPopularLimit))
	_ = s.cache.Delete(ctx, fmt.Sprintf("popular:instructors:%d", DefaultPopularLimit))
}
