package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types as stored.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// User represents a user in the system. Identity is the (first name, last name) pair.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string    `gorm:"not null;uniqueIndex:idx_users_name" json:"firstName"`
	LastName     string    `gorm:"not null;uniqueIndex:idx_users_name" json:"lastName"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Transaction represents a single income or expense owned by one user.
// Amount and Date are kept as the normalized text the user submitted.
type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string    `gorm:"not null" json:"type"`
	Category    string    `gorm:"not null" json:"category"`
	Amount      string    `gorm:"not null" json:"amount"`
	Date        string    `gorm:"not null" json:"date"`
	Description string    `gorm:"not null" json:"description"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category is a (name, type) pair observed across transactions.
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null;index" json:"name"`
	Type string    `gorm:"not null" json:"type"`
}

// TransactionFields are the five business fields shared by create and update.
type TransactionFields struct {
	Type        string
	Category    string
	Amount      string
	Date        string
	Description string
}

// Apply copies the business fields onto t.
func (f TransactionFields) Apply(t *Transaction) {
	t.Type = f.Type
	t.Category = f.Category
	t.Amount = f.Amount
	t.Date = f.Date
	t.Description = f.Description
}

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Transaction{}, &Category{}}
}
