package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expense-tracker-go-be/models"
)

// TransactionStore persists transactions.
type TransactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// Create inserts a new transaction, assigning its ID.
func (s *TransactionStore) Create(ctx context.Context, t *models.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// FindByID returns the transaction with the given ID regardless of owner.
func (s *TransactionStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return &t, nil
}

// Exists reports whether userID already owns a transaction with exactly these fields.
func (s *TransactionStore) Exists(ctx context.Context, userID uuid.UUID, f models.TransactionFields) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where(map[string]interface{}{
			"type":        f.Type,
			"category":    f.Category,
			"amount":      f.Amount,
			"date":        f.Date,
			"description": f.Description,
			"user_id":     userID,
		}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check duplicate transaction: %w", err)
	}
	return count > 0, nil
}

// ListByUser returns every transaction owned by userID, optionally limited
// to one category, oldest first.
func (s *TransactionStore) ListByUser(ctx context.Context, userID uuid.UUID, category string) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	txns := []models.Transaction{}
	if err := q.Order("created_at").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

// Update replaces the business fields and owner of an existing transaction.
func (s *TransactionStore) Update(ctx context.Context, t *models.Transaction) error {
	res := s.db.WithContext(ctx).Model(t).
		Select("type", "category", "amount", "date", "description", "user_id").
		Updates(t)
	if res.Error != nil {
		return fmt.Errorf("update transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the transaction with the given ID.
func (s *TransactionStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
