package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"expense-tracker-go-be/apperror"
	"expense-tracker-go-be/auth"
	"expense-tracker-go-be/database"
	"expense-tracker-go-be/logging"
	"expense-tracker-go-be/models"
)

// UserStore is the credential store used by AuthService.
type UserStore interface {
	FindByName(ctx context.Context, firstName, lastName string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// Credentials is the signup/login input.
type Credentials struct {
	FirstName string
	LastName  string
	Password  string
}

// Session is an issued session token for a user.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// AuthService registers and authenticates users.
type AuthService struct {
	users      UserStore
	tokens     *auth.TokenService
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(users UserStore, tokens *auth.TokenService, bcryptCost int, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        logging.Component(log, logging.ComponentAuth),
	}
}

// Register creates a user and opens a session for it.
func (s *AuthService) Register(ctx context.Context, in Credentials) (*Session, error) {
	in, err := checkCredentials(in)
	if err != nil {
		return nil, err
	}

	_, err = s.users.FindByName(ctx, in.FirstName, in.LastName)
	switch {
	case err == nil:
		return nil, apperror.ErrUserAlreadyExists
	case !errors.Is(err, database.ErrNotFound):
		return nil, apperror.Internal(err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &models.User{FirstName: in.FirstName, LastName: in.LastName, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperror.ErrUserAlreadyExists
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info().
		Str(logging.FieldOperation, logging.OpRegister).
		Str(logging.FieldUserID, user.ID.String()).
		Msg("User created")

	return s.open(user)
}

// Login checks the password of an existing user and opens a new session.
func (s *AuthService) Login(ctx context.Context, in Credentials) (*Session, error) {
	in, err := checkCredentials(in)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByName(ctx, in.FirstName, in.LastName)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperror.ErrUserNotFound
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ok, err := auth.ComparePassword(user.PasswordHash, in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		s.log.Warn().
			Str(logging.FieldOperation, logging.OpLogin).
			Str(logging.FieldUserID, user.ID.String()).
			Msg("Password mismatch")
		return nil, apperror.ErrInvalidCredentials
	}

	return s.open(user)
}

func (s *AuthService) open(user *models.User) (*Session, error) {
	token, expires, err := s.tokens.Issue(auth.Identity{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &Session{User: user, Token: token, ExpiresAt: expires}, nil
}

// checkCredentials trims the names and applies the name and password
// format rules shared by signup and login.
func checkCredentials(in Credentials) (Credentials, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if !validName(in.FirstName) || !validName(in.LastName) {
		return in, apperror.ErrInvalidName
	}
	if !auth.ValidPassword(in.Password) {
		return in, apperror.ErrInvalidPassword
	}
	return in, nil
}
