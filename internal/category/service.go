// File: internal/category/service.go
package category

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for category business logic.
type Service interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ListAll(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new category service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("category-service")}
}

func (s *service) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	cat := &Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	s.logger.Info("Category created", zap.String("categoryID", cat.ID.String()), zap.String("name", cat.Name))
	return cat, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		cat.Name = name
		cat.Slug = slug.Make(name)
	}
	if req.Description != nil {
		cat.Description = req.Description
	}

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Category deleted", zap.String("categoryID", id.String()))
	return nil
}
