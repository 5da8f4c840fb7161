package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/internal/validation"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// Messages returned to API callers.
const (
	MsgInvalidUserID    = "Invalid user ID format"
	MsgDuplicateEmail   = "User with this email already exists"
	MsgEmailInUse       = "Email already in use by another user"
	userResource        = "User"
	logFieldUserID      = "user_id"
	logFieldUpdatedKeys = "fields"
)

// UserService validates user payloads, hashes passwords and drives the
// user repository.
type UserService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	logger *zap.Logger
	now    func() time.Time
}

// UserDependencies encapsulates collaborators of the user service.
type UserDependencies struct {
	UserRepo repository.UserRepository
	Logger   *zap.Logger
	// Clock overrides time.Now, mostly for tests.
	Clock func() time.Time
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &UserService{
		users:  deps.UserRepo,
		hasher: auth.NewPasswordHasher(cfg.Password.BcryptCost),
		logger: logger,
		now:    clock,
	}
}

// ListUsers returns every stored user.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// GetUser looks a user up by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(userResource)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// CreateUser validates payload, hashes the password and inserts the user.
// Any id supplied in payload is ignored.
func (s *UserService) CreateUser(ctx context.Context, payload map[string]any) (*domain.User, error) {
	if err := validation.ValidateUserData(payload); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	name, _ := payload["name"].(string)
	email, _ := payload["email"].(string)
	password, _ := payload["password"].(string)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewBadRequest(err)
	}

	user := domain.NewUser(name, email, hash, s.now().UTC())
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail(MsgDuplicateEmail)
		}
		return nil, apperrors.NewBadRequest(err)
	}

	s.logger.Info("user created", zap.String(logFieldUserID, user.ID))
	return user, nil
}

// UpdateUser applies a partial update. Only fields present in payload change;
// the password is rehashed only when a non-empty one is supplied.
func (s *UserService) UpdateUser(ctx context.Context, id string, payload map[string]any) (*domain.User, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(userResource)
		}
		return nil, apperrors.NewBadRequest(err)
	}

	if err := validation.ValidateUserUpdate(payload); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	update := domain.NewUserUpdate(s.now().UTC())
	changed := make([]string, 0, 3)
	if name, ok := payload["name"].(string); ok {
		update.Name = &name
		changed = append(changed, "name")
	}
	if email, ok := payload["email"].(string); ok {
		update.Email = &email
		changed = append(changed, "email")
	}
	if password, ok := payload["password"].(string); ok && password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, apperrors.NewBadRequest(err)
		}
		update.PasswordHash = &hash
		changed = append(changed, "password")
	}

	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.NewDuplicateEmail(MsgEmailInUse)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFound(userResource)
		default:
			return nil, apperrors.NewBadRequest(err)
		}
	}

	s.logger.Info("user updated", zap.String(logFieldUserID, id), zap.Strings(logFieldUpdatedKeys, changed))
	return user, nil
}

// DeleteUser removes the user with the given id.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	id, err := canonicalID(id)
	if err != nil {
		return err
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound(userResource)
		}
		return apperrors.NewInternalError(err)
	}

	s.logger.Info("user deleted", zap.String(logFieldUserID, id))
	return nil
}

// DeleteUserByEmail removes the user owning email.
func (s *UserService) DeleteUserByEmail(ctx context.Context, email string) error {
	if err := s.users.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound(userResource)
		}
		return apperrors.NewInternalError(err)
	}

	s.logger.Info("user deleted by email")
	return nil
}

func canonicalID(id string) (string, error) {
	if !validation.ValidateObjectID(id) {
		return "", apperrors.NewInvalidID(MsgInvalidUserID)
	}
	return uuid.MustParse(id).String(), nil
}
