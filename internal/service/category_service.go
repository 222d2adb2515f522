package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	categoryCacheTTL     = 10 * time.Minute
	categoryListCacheKey = "categories:all"
)

// DefaultCategories is the reference data loaded by the seeder.
var DefaultCategories = []model.Category{
	{Name: "Work", Description: strPtr("Job and career related tasks"), Color: "#007bff"},
	{Name: "Personal", Description: strPtr("Personal errands and goals"), Color: "#28a745"},
	{Name: "Shopping", Description: strPtr("Things to buy"), Color: "#ffc107"},
	{Name: "Health", Description: strPtr("Exercise, appointments and wellbeing"), Color: "#dc3545"},
	{Name: "Learning", Description: strPtr("Courses, reading and practice"), Color: "#6f42c1"},
}

// CategoryService exposes read access to categories and seeding.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id uint) (*model.Category, error)
	SeedCategories(ctx context.Context, categories []model.Category) (created int, updated int, err error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

func (s *categoryService) cacheKey(id uint) string {
	return fmt.Sprintf("category:%d", id)
}

// ListCategories returns all categories ordered by name.
func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if s.cache.GetJSON(ctx, categoryListCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	s.cache.SetJSON(ctx, categoryListCacheKey, categories, categoryCacheTTL)
	return categories, nil
}

// GetCategory retrieves a category by ID with caching.
func (s *categoryService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	var cached model.Category
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Category")
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), category, categoryCacheTTL)
	return category, nil
}

// SeedCategories creates missing categories and refreshes existing ones, matched by name.
func (s *categoryService) SeedCategories(ctx context.Context, categories []model.Category) (created int, updated int, err error) {
	keys := []string{categoryListCacheKey}
	defer func() {
		_ = s.cache.Delete(ctx, keys...)
	}()

	for _, item := range categories {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		color := item.Color
		if color == "" {
			color = model.DefaultCategoryColor
		}

		existing, err := s.repo.FindByName(ctx, name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, updated, fmt.Errorf("check category %q: %w", name, err)
		}

		if existing != nil {
			existing.Description = item.Description
			existing.Color = color
			if err := s.repo.Update(ctx, existing); err != nil {
				return created, updated, fmt.Errorf("update category %q: %w", name, err)
			}
			keys = append(keys, s.cacheKey(existing.ID))
			updated++
			continue
		}

		category := &model.Category{Name: name, Description: item.Description, Color: color}
		if err := s.repo.Create(ctx, category); err != nil {
			return created, updated, fmt.Errorf("create category %q: %w", name, err)
		}
		created++
	}

	return created, updated, nil
}

func strPtr(s string) *string {
	return &s
}
