package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expense-tracker-go-be/models"
)

// CategoryStore persists the category lookup derived from transactions.
type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// EnsureByNameAndType creates (name, typ) unless a category with both
// the same name and type exists. It reports whether a row was created.
func (s *CategoryStore) EnsureByNameAndType(ctx context.Context, name, typ string) (bool, error) {
	return s.ensure(ctx, name, typ,
		s.db.WithContext(ctx).Where("name = ? AND type = ?", name, typ))
}

// EnsureByName creates (name, typ) unless a category with the same name
// exists, whatever its type.
func (s *CategoryStore) EnsureByName(ctx context.Context, name, typ string) (bool, error) {
	return s.ensure(ctx, name, typ,
		s.db.WithContext(ctx).Where("name = ?", name))
}

func (s *CategoryStore) ensure(ctx context.Context, name, typ string, lookup *gorm.DB) (bool, error) {
	var existing models.Category
	err := lookup.First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("find category: %w", err)
	}

	c := models.Category{ID: uuid.New(), Name: name, Type: typ}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return false, fmt.Errorf("create category: %w", err)
	}
	return true, nil
}

// List returns every category ordered by name then type.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Order("name, type").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
