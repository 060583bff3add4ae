package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"expense-tracker-go-be/apperror"
	"expense-tracker-go-be/database"
	"expense-tracker-go-be/logging"
	"expense-tracker-go-be/models"
)

// TransactionStore is the transaction persistence used by TransactionService.
type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Exists(ctx context.Context, userID uuid.UUID, f models.TransactionFields) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, category string) ([]models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryStore is the category lookup maintained alongside transactions.
type CategoryStore interface {
	EnsureByNameAndType(ctx context.Context, name, typ string) (bool, error)
	EnsureByName(ctx context.Context, name, typ string) (bool, error)
	List(ctx context.Context) ([]models.Category, error)
}

// TransactionService implements the transaction operations, always scoped
// to the calling user.
type TransactionService struct {
	txns       TransactionStore
	categories CategoryStore
	log        zerolog.Logger
}

func NewTransactionService(txns TransactionStore, categories CategoryStore, log zerolog.Logger) *TransactionService {
	return &TransactionService{
		txns:       txns,
		categories: categories,
		log:        logging.Component(log, logging.ComponentTransaction),
	}
}

// Create validates and stores a new transaction for userID, then records
// its category if the (name, type) pair is new.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, in models.TransactionFields) (*models.Transaction, error) {
	f, err := ValidateTransaction(in)
	if err != nil {
		return nil, err
	}

	// check-then-insert is not atomic; two identical concurrent requests can both pass
	exists, err := s.txns.Exists(ctx, userID, f)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.ErrDuplicateTransaction
	}

	t := &models.Transaction{UserID: userID}
	f.Apply(t)
	if err := s.txns.Create(ctx, t); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info().
		Str(logging.FieldOperation, logging.OpCreate).
		Str(logging.FieldUserID, userID.String()).
		Str(logging.FieldTransactionID, t.ID.String()).
		Msg("Transaction created")

	created, err := s.categories.EnsureByNameAndType(ctx, t.Category, t.Type)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if created {
		s.log.Debug().
			Str(logging.FieldCategory, t.Category).
			Str(logging.FieldType, t.Type).
			Msg("Category recorded")
	}
	return t, nil
}

// List returns every transaction owned by userID.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	txns, err := s.txns.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	s.log.Debug().
		Str(logging.FieldOperation, logging.OpList).
		Str(logging.FieldUserID, userID.String()).
		Int(logging.FieldCount, len(txns)).
		Msg("Transactions listed")
	return txns, nil
}

// Get returns one transaction owned by userID.
func (s *TransactionService) Get(ctx context.Context, userID uuid.UUID, id string) (*models.Transaction, error) {
	t, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Str(logging.FieldOperation, logging.OpRead).
		Str(logging.FieldUserID, userID.String()).
		Str(logging.FieldTransactionID, t.ID.String()).
		Msg("Transaction read")
	return t, nil
}

// Update replaces the business fields of a transaction owned by userID.
// The category is recorded if no category of that name exists yet.
func (s *TransactionService) Update(ctx context.Context, userID uuid.UUID, id string, in models.TransactionFields) (*models.Transaction, error) {
	t, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	f, err := ValidateTransaction(in)
	if err != nil {
		return nil, err
	}

	f.Apply(t)
	t.UserID = userID
	if err := s.txns.Update(ctx, t); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info().
		Str(logging.FieldOperation, logging.OpUpdate).
		Str(logging.FieldUserID, userID.String()).
		Str(logging.FieldTransactionID, t.ID.String()).
		Msg("Transaction updated")

	created, err := s.categories.EnsureByName(ctx, t.Category, t.Type)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if created {
		s.log.Debug().
			Str(logging.FieldCategory, t.Category).
			Str(logging.FieldType, t.Type).
			Msg("Category recorded")
	}
	return t, nil
}

// Delete removes a transaction owned by userID.
func (s *TransactionService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	t, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.txns.Delete(ctx, t.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperror.ErrNotFound
		}
		return apperror.Internal(err)
	}

	s.log.Info().
		Str(logging.FieldOperation, logging.OpDelete).
		Str(logging.FieldUserID, userID.String()).
		Str(logging.FieldTransactionID, t.ID.String()).
		Msg("Transaction deleted")
	return nil
}

// Categories returns every recorded category.
func (s *TransactionService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

// owned loads a transaction and checks userID owns it. The checks run in
// a fixed order: missing id, then existence, then ownership. An id that is
// not a UUID cannot exist and reports NotFound.
func (s *TransactionService) owned(ctx context.Context, userID uuid.UUID, id string) (*models.Transaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ErrMissingID
	}

	txnID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	t, err := s.txns.FindByID(ctx, txnID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if t.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return t, nil
}
