package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"musicmentor/internal/model"
	"musicmentor/internal/repository"
)

// SelectionService exposes basket operations.
type SelectionService interface {
	Add(ctx context.Context, selection *model.Selection) (*model.Selection, error)
	ListByStudent(ctx context.Context, email string) ([]model.Selection, error)
	Remove(ctx context.Context, id uuid.UUID) (int64, error)
}

type selectionService struct {
	repo repository.SelectionRepository
}

// NewSelectionService builds a SelectionService.
func NewSelectionService(repo repository.SelectionRepository) SelectionService {
	return &selectionService{repo: repo}
}

func (s *selectionService) Add(ctx context.Context, selection *model.Selection) (*model.Selection, error) {
	if err := s.repo.Create(ctx, selection); err != nil {
		return nil, fmt.Errorf("create selection: %w", err)
	}
	return selection, nil
}

func (s *selectionService) ListByStudent(ctx context.Context, email string) ([]model.Selection, error) {
	return s.repo.ListByEmail(ctx, email)
}

// Remove deletes a basket entry by id and returns the deleted count.
func (s *selectionService) Remove(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.repo.DeleteByID(ctx, id)
}
