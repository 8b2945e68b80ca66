package services

import (
	"context"
	"errors"

	"github.com/DreamWeaver-code/Market/internal/logger"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const pgUniqueViolation = "23505"

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username string, email *string, passwordHash string) (*models.UserDB, error)
}

// TokenIssuer defines an interface for issuing signed tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID int64, username string) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader     UserReader
	writer     UserWriter
	jwt        TokenIssuer
	bcryptCost int
}

// NewAuthService creates a new AuthService instance. bcryptCost is the
// work factor used for password hashing.
func NewAuthService(reader UserReader, writer UserWriter, jwt TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{
		reader:     reader,
		writer:     writer,
		jwt:        jwt,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user and returns it with a fresh token.
// A taken username fails with ErrUsernameTaken regardless of password
// content.
func (svc *AuthService) Register(ctx context.Context, username, password string) (*models.UserDB, string, error) {
	exists, err := svc.reader.ExistsByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check username", "err", err)
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), svc.bcryptCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, "", err
	}

	user, err := svc.writer.Save(ctx, username, nil, string(hashedPassword))
	if err != nil {
		// A registration racing this one past the existence check
		// surfaces as a unique violation on insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, "", ErrUsernameTaken
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, "", err
	}

	token, err := svc.jwt.Generate(ctx, user.ID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// Login authenticates a user and returns it with a fresh token. An
// unknown username and a wrong password both fail with
// ErrInvalidCredentials, indistinguishably.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*models.UserDB, string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return nil, "", err
	}

	return user, token, nil
}
