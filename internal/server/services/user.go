// Package services contains server-side business logic. This file implements
// UserService: registration, login, token resolution and experience points.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/todoweb/internal/common"
	"github.com/dmitrijs2005/todoweb/internal/dbx"
	"github.com/dmitrijs2005/todoweb/internal/server/auth"
	"github.com/dmitrijs2005/todoweb/internal/server/config"
	"github.com/dmitrijs2005/todoweb/internal/server/models"
	"github.com/dmitrijs2005/todoweb/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// RegisterParams carries the fields of a registration request.
type RegisterParams struct {
	UserName    string
	Email       string
	Password    string
	DisplayName *string
}

// UserService provides account operations:
// - Register / Login: create or verify credentials and mint tokens
// - Authenticate: resolve a bearer token to a stored user
// - AdjustExperience: add (or subtract) experience points
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	passwordHashCost            int

	dummyHashOnce sync.Once
	dummyHash     string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		passwordHashCost:            cfg.PasswordHashCost,
	}
}

// Register creates a user and returns it with a fresh access token.
// Username and email are checked in that order inside one transaction; a
// unique violation raised by a concurrent insert maps to the same errors.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.User, string, error) {
	var user *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		taken, err := repo.ExistsByUserName(ctx, p.UserName)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrDuplicateUsername
		}

		taken, err = repo.ExistsByEmail(ctx, p.Email)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrDuplicateEmail
		}

		hash, err := s.hashPassword(p.Password)
		if err != nil {
			return err
		}

		user, err = repo.Create(ctx, &models.User{
			UserName:     p.UserName,
			Email:        p.Email,
			PasswordHash: hash,
			DisplayName:  p.DisplayName,
		})
		return err
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh access token.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, userName, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the timing of both failure paths alike
			auth.CheckPassword(s.getDummyHash(), password)
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// IsUsernameAvailable reports whether no user holds userName.
func (s *UserService) IsUsernameAvailable(ctx context.Context, userName string) (bool, error) {
	taken, err := s.repomanager.Users(s.db).ExistsByUserName(ctx, userName)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// Authenticate resolves a bearer token to its user. A token that fails
// verification yields an error matching common.ErrorUnauthorized; a valid
// token whose user is gone yields common.ErrorNotFound.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return s.GetUser(ctx, userID)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// AdjustExperience adds delta to the user's experience points. No bounds
// are enforced.
func (s *UserService) AdjustExperience(ctx context.Context, userID, delta int64) (*models.User, error) {
	return s.repomanager.Users(s.db).AddExperience(ctx, userID, delta)
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID int64) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("%w: token for user %d: %v", common.ErrorInternal, userID, err)
	}
	return token, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := auth.HashPassword(password, s.passwordHashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return "", fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}
	return hash, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyHashOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("todoweb-placeholder-password", s.passwordHashCost)
	})
	return s.dummyHash
}
