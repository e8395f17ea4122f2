package service

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"authserver/internal/crypto"
	"authserver/internal/models"
	"authserver/internal/repository"
	"authserver/internal/token"
	"authserver/internal/util"
)

// Error texts are client-facing wire messages; their exact wording and
// casing is part of the external contract.
var (
	ErrMissingBody        = errors.New("Missing request body")
	ErrInvalidBody        = errors.New("Invalid request body")
	ErrEmptyField         = errors.New("Empty request field")
	ErrUnknownUser        = errors.New("username not registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminUndeletable   = errors.New("You cannot delete the admin user")
	ErrRegisterStorage    = errors.New("something went wrong when registering")
	ErrDeleteStorage      = errors.New("something went wrong when deleting user")
)

type AuthService interface {
	Login(username, passwordhash string) (string, error)
	Register(username, passwordhash string) (string, error)
	DeleteUser(username string) error
	ListUsers() []models.UserInfo
}

type authService struct {
	registry repository.UserRegistry
	issuer   *token.Issuer
	salt     string
	logger   *zap.Logger

	// mu serializes mutate+persist cycles so concurrent register/delete
	// calls cannot interleave a read-modify-write on the registry.
	mu sync.Mutex
}

func NewAuthService(registry repository.UserRegistry, issuer *token.Issuer, logger *zap.Logger) AuthService {
	return &authService{
		registry: registry,
		issuer:   issuer,
		salt:     crypto.DefaultSalt,
		logger:   logger,
	}
}

// CredentialsFromBody validates the raw request body and extracts the
// username and passwordhash values. Validation happens on the raw map so a
// missing key stays distinguishable from an empty value.
func CredentialsFromBody(body map[string]any) (string, string, error) {
	if body == nil {
		return "", "", ErrMissingBody
	}
	if !util.VerifyKeys([]string{"username", "passwordhash"}, body) {
		return "", "", ErrInvalidBody
	}
	username, ok := body["username"].(string)
	if !ok {
		return "", "", ErrInvalidBody
	}
	passwordhash, ok := body["passwordhash"].(string)
	if !ok {
		return "", "", ErrInvalidBody
	}
	if username == "" || passwordhash == "" {
		return "", "", ErrEmptyField
	}
	return username, passwordhash, nil
}

func (s *authService) Login(username, passwordhash string) (string, error) {
	record, ok := s.registry.Get(username)
	if !ok {
		return "", ErrUnknownUser
	}
	if record.PasswordHash != crypto.SaltedHash(s.salt, passwordhash) {
		return "", ErrInvalidCredentials
	}

	perms := models.PermissionList()
	if record.IsAdmin {
		perms = models.PermissionList("admin")
	}
	tok, err := s.issuer.Issue(username, &perms)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.String("username", username), zap.Error(err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("username", username))
	return tok, nil
}

func (s *authService) Register(username, passwordhash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.registry.Get(username); ok {
		return "", ErrUsernameTaken
	}

	record := models.UserRecord{PasswordHash: crypto.SaltedHash(s.salt, passwordhash)}
	s.registry.Put(username, record)
	if err := s.registry.Persist(); err != nil {
		s.logger.Error("Failed to persist user registration", zap.String("username", username), zap.Error(err))
		// Revert the in-memory add so memory matches the file on disk.
		s.registry.Delete(username)
		return "", ErrRegisterStorage
	}

	// Freshly registered users get a token carrying only the subject, with
	// no permissions claim at all.
	tok, err := s.issuer.Issue(username, nil)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.String("username", username), zap.Error(err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User registered", zap.String("username", username))
	return tok, nil
}

func (s *authService) DeleteUser(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.registry.Get(username)
	if !ok {
		return ErrUserNotFound
	}
	if record.IsAdmin {
		return ErrAdminUndeletable
	}

	s.registry.Delete(username)
	if err := s.registry.Persist(); err != nil {
		s.logger.Error("Failed to persist user deletion", zap.String("username", username), zap.Error(err))
		// Restore memory from the last durable file contents.
		if lerr := s.registry.Load(); lerr != nil {
			s.logger.Error("Failed to reload users file after write failure", zap.Error(lerr))
		}
		return ErrDeleteStorage
	}

	s.logger.Info("User deleted", zap.String("username", username))
	return nil
}

func (s *authService) ListUsers() []models.UserInfo {
	return s.registry.List()
}
